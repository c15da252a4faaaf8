// Package gen provides code generation for record builders.
package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrMalformedDirective indicates a builder attribute that does not
	// follow the builder(each = "name") grammar.
	ErrMalformedDirective = errors.New("buildergen: malformed directive")
	// ErrDirectiveTypeMismatch indicates a well-formed directive on a field
	// that is not a repeated container.
	ErrDirectiveTypeMismatch = errors.New("buildergen: directive on non-repeated field")
	// ErrNameConflict indicates two generated members with the same name.
	ErrNameConflict = errors.New("buildergen: name conflict")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("buildergen: missing configuration")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("buildergen: code generation failed")
)

// DirectiveKind classifies a DirectiveError.
type DirectiveKind uint8

// Directive error kinds.
const (
	// Malformed directives do not match the directive grammar.
	Malformed DirectiveKind = iota
	// TypeMismatch directives are well-formed, but attached to a field
	// whose type is not a repeated wrapper.
	TypeMismatch
)

// DirectiveError reports a rejected builder attribute.
type DirectiveError struct {
	Kind      DirectiveKind
	Type      string // Record name (if known)
	Field     string // Field name (if known)
	Pos       string // Field position (if known)
	Attribute string // Raw attribute text
	Message   string
}

// Error implements the error interface.
func (e *DirectiveError) Error() string {
	var b strings.Builder
	if e.Pos != "" {
		b.WriteString(e.Pos)
		b.WriteString(": ")
	}
	b.WriteString("buildergen: directive error")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Attribute != "" {
		fmt.Fprintf(&b, " (%s)", e.Attribute)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error of the kind.
func (e *DirectiveError) Is(target error) bool {
	switch e.Kind {
	case TypeMismatch:
		return target == ErrDirectiveTypeMismatch
	default:
		return target == ErrMalformedDirective
	}
}

// newMalformed creates a new malformed DirectiveError.
func newMalformed(attr, format string, args ...any) *DirectiveError {
	return &DirectiveError{
		Kind:      Malformed,
		Attribute: attr,
		Message:   fmt.Sprintf(format, args...),
	}
}

// ConflictError reports two generated members sharing one name.
type ConflictError struct {
	Type    string // Record name
	Name    string // Conflicting member name
	Members []string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	var b strings.Builder
	b.WriteString("buildergen: name conflict")
	if e.Type != "" {
		b.WriteString(" on type ")
		b.WriteString(e.Type)
	}
	fmt.Fprintf(&b, ": %q is generated for %s", e.Name, strings.Join(e.Members, " and "))
	return b.String()
}

// Is reports whether the target matches ErrNameConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrNameConflict
}

// NewConflictError creates a new ConflictError.
func NewConflictError(typeName, name string, members ...string) *ConflictError {
	return &ConflictError{
		Type:    typeName,
		Name:    name,
		Members: members,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("buildergen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("buildergen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "render", "write", etc.
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("buildergen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsDirectiveError reports whether the error is a DirectiveError.
func IsDirectiveError(err error) bool {
	var dirErr *DirectiveError
	return errors.As(err, &dirErr)
}

// IsConflictError reports whether the error is a ConflictError.
func IsConflictError(err error) bool {
	var conflictErr *ConflictError
	return errors.As(err, &conflictErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
