package resolver

import (
	"errors"
	"fmt"
)

// Validation failures. Both map to a client error.
var (
	// ErrUnknownFunction indicates the action names no registered profile and
	// no custom prompt was given.
	ErrUnknownFunction = errors.New("פונקציה לא קיימת")

	// ErrMissingMessage indicates the request carried no text to process.
	ErrMissingMessage = errors.New("חסר טקסט לעיבוד")
)

// ValidationError wraps a validation sentinel with the offending field.
type ValidationError struct {
	Err   error
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying sentinel for errors.Is.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Detail is a log-friendly description including the field.
func (e *ValidationError) Detail() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s=%q", e.Err, e.Field, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Field)
}

// IsValidation reports whether err is a resolver validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
