// Package validation holds the error type returned when caller input is rejected
// before anything is written to the store.
package validation

import (
	"errors"
	"fmt"
)

// Error names the offending field and why it was rejected.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// New returns a validation error for field.
func New(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err is, or wraps, a validation error.
func Is(err error) bool {
	var ve *Error
	return errors.As(err, &ve)
}

// Field returns the field name of a wrapped validation error, or "" when err is not one.
func Field(err error) string {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Field
	}

	return ""
}
