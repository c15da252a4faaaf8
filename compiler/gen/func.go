package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

// AddAcronym adds a new acronym to the naming rules, e.g. "GRPC".
func AddAcronym(word string) {
	rules.AddAcronym(word)
	acronyms[strings.ToUpper(word)] = struct{}{}
}

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Common initialisms from golint.
	for _, w := range []string{
		"ACL", "API", "ASCII", "AWS", "CPU", "CSS", "DNS", "EOF", "GB", "GUID",
		"HTML", "HTTP", "HTTPS", "ID", "IP", "JSON", "KB", "MAC", "MB", "RAM",
		"RPC", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP", "UI", "UID", "URI",
		"URL", "UTF8", "UUID", "VM", "XML", "XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// snake converts the given identifier to snake case, e.g. HTTPCode to
// http_code.
func snake(s string) string {
	var (
		b     strings.Builder
		runes = []rune(s)
		last  = -1
	)
	for i, r := range runes {
		// A word starts at an upper letter following a lower one (UserInfo),
		// or at the last upper letter of an acronym (HTTPCode).
		if i > 0 && i < len(runes)-1 && unicode.IsUpper(r) {
			prev, next := runes[i-1], runes[i+1]
			if unicode.IsLower(prev) || last != i-1 && unicode.IsLower(next) && unicode.IsLetter(prev) {
				last = i
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

func pascalWords(words []string) string {
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
		} else {
			words[i] = rules.Capitalize(w)
		}
	}
	return strings.Join(words, "")
}

// pascal converts the given name to pascal case, e.g. user_id to UserID.
func pascal(s string) string {
	return pascalWords(strings.FieldsFunc(s, isSeparator))
}

// camel converts the given name to camel case, e.g. user_id to userID.
func camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return s
	}
	return strings.ToLower(words[0]) + pascalWords(words[1:])
}

// lowerCamel returns the unexported form of a Go identifier, e.g.
// CurrentDir to currentDir and HTTPCode to httpCode.
func lowerCamel(name string) string {
	s := camel(snake(name))
	if !token.IsIdentifier(s) {
		return name
	}
	return s
}
