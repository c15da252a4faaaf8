package gen

import (
	"go/token"
	"go/types"
	"unicode"
	"unicode/utf8"
)

// builderField returns the struct field for the given name
// and ensures it doesn't conflict with Go keywords, and it is not
// exported.
func builderField(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if token.Lookup(name).IsKeyword() || !unicode.IsLower(r) {
		return "_" + name
	}
	return name
}

// paramName returns the mutator parameter for the given name. It does not
// shadow keywords, predeclared identifiers or the receiver.
func paramName(name, receiver string) string {
	if token.Lookup(name).IsKeyword() || types.Universe.Lookup(name) != nil || name == receiver {
		return "_" + name
	}
	if r, _ := utf8.DecodeRuneInString(name); !unicode.IsLower(r) && r != '_' {
		return "_" + name
	}
	return name
}
