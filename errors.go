package buildergen

import (
	"errors"
	"fmt"
)

// ErrMissingField is returned by generated Build methods when a
// required field was never set on the builder.
var ErrMissingField = errors.New("buildergen: missing required field")

// MissingFieldError reports the first required field, in declaration
// order, that was not set before Build was called.
type MissingFieldError struct {
	record string
	field  string
}

// Error returns the error string.
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("buildergen: missing required field %q on %s", e.field, e.record)
}

// Is reports whether the target error matches MissingFieldError.
// This allows errors.Is(missingErr, ErrMissingField) to return true.
func (e *MissingFieldError) Is(err error) bool {
	return err == ErrMissingField
}

// Record returns the name of the record being built.
func (e *MissingFieldError) Record() string {
	return e.record
}

// Field returns the name of the unset field.
func (e *MissingFieldError) Field() string {
	return e.field
}

// NewMissingFieldError returns a new MissingFieldError for the given record field.
func NewMissingFieldError(record, field string) *MissingFieldError {
	return &MissingFieldError{record: record, field: field}
}

// IsMissingField returns true if the error is a MissingFieldError.
func IsMissingField(err error) bool {
	if err == nil {
		return false
	}
	var e *MissingFieldError
	return errors.As(err, &e) || errors.Is(err, ErrMissingField)
}
