package person

import (
	"errors"
	"fmt"
)

// Validation failure kinds. Wrapped by ValidationError.
var (
	// ErrInvalidFormat means the value has the wrong shape.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidRange means the value is well-formed but not allowed.
	ErrInvalidRange = errors.New("out of range")
	// ErrInvalidLength means a phone number has the wrong digit count.
	ErrInvalidLength = errors.New("invalid length")
	// ErrNotText means a boundary adapter received a non-string value.
	ErrNotText = errors.New("not text")
)

// ValidationError describes a rejected field value.
type ValidationError struct {
	Field  string // age, email, phone, subjects
	Value  string // offending input as given
	Reason string // human readable detail
	Err    error  // one of the Err* kinds above
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap allows errors.Is against the kind sentinels.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, value string, kind error, reason string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Value:  value,
		Reason: reason,
		Err:    kind,
	}
}
