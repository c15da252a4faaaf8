package load

import (
	"errors"
	"strings"
)

// ErrUnsupportedShape indicates that a type is not a flat named-field record.
var ErrUnsupportedShape = errors.New("buildergen: unsupported record shape")

// UnsupportedShapeError describes why a type cannot be used as a record.
type UnsupportedShapeError struct {
	Type    string // Type name
	Pos     string // Source position (if known)
	Message string
}

// Error implements the error interface.
func (e *UnsupportedShapeError) Error() string {
	var b strings.Builder
	b.WriteString("buildergen: unsupported shape")
	if e.Type != "" {
		b.WriteString(" for type ")
		b.WriteString(e.Type)
	}
	if e.Pos != "" {
		b.WriteString(" (")
		b.WriteString(e.Pos)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches ErrUnsupportedShape.
func (e *UnsupportedShapeError) Is(target error) bool {
	return target == ErrUnsupportedShape
}

// NewUnsupportedShapeError creates a new UnsupportedShapeError.
func NewUnsupportedShapeError(typeName, pos, message string) *UnsupportedShapeError {
	return &UnsupportedShapeError{
		Type:    typeName,
		Pos:     pos,
		Message: message,
	}
}

// IsUnsupportedShape reports whether the error is an UnsupportedShapeError.
func IsUnsupportedShape(err error) bool {
	var shapeErr *UnsupportedShapeError
	return errors.As(err, &shapeErr)
}
