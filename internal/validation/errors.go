// Package validation provides the error taxonomy and input checks shared by the ranking engine.
package validation

import (
	"errors"
	"fmt"
)

// InvalidInputError reports malformed or out-of-contract data reaching a pure function
type InvalidInputError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidInputError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("invalid input: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("invalid input: %s", msg)
}

func (e *InvalidInputError) Unwrap() error {
	return e.Cause
}

// InvalidConfigError reports a caller-supplied configuration, such as a weighting, that cannot be used
type InvalidConfigError struct {
	Field   string
	Message string
	Cause   error
}

func (e *InvalidConfigError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("invalid config: %s: %v", msg, e.Cause)
	}
	return fmt.Sprintf("invalid config: %s", msg)
}

func (e *InvalidConfigError) Unwrap() error {
	return e.Cause
}

// InputErrorf builds an InvalidInputError for field.
func InputErrorf(field, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConfigErrorf builds an InvalidConfigError for field.
func ConfigErrorf(field, format string, args ...any) *InvalidConfigError {
	return &InvalidConfigError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsInvalidInput reports whether err wraps an InvalidInputError.
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsInvalidConfig reports whether err wraps an InvalidConfigError.
func IsInvalidConfig(err error) bool {
	var target *InvalidConfigError
	return errors.As(err, &target)
}
