// Package buildergen holds the runtime support imported by generated builders.
//
// Builders are generated from plain Go structs by the compiler/gen package
// (usually through the buildergen command and a go:generate directive):
//
//	//go:generate go run github.com/syssam/buildergen/cmd/buildergen generate --type Command
//	type Command struct {
//		Executable string
//		// +builder(each = "arg")
//		Args       []string
//		CurrentDir *string
//	}
//
// The generated CommandBuilder exposes one chainable method per field and a
// Build method that returns a *MissingFieldError when a required field is unset:
//
//	cmd, err := NewCommandBuilder().
//		Executable("ls").
//		arg("-l").
//		Build()
//	if buildergen.IsMissingField(err) {
//		// ...
//	}
package buildergen
