package assistant

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrLLMUnavailable is returned when the language-model gateway cannot
	// be reached at all; the only upstream failure surfaced as a hard error.
	ErrLLMUnavailable = errors.New("llm gateway unavailable")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IsValidation reports whether err is a request-validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsLLMUnavailable reports whether err is a language-model gateway outage.
func IsLLMUnavailable(err error) bool {
	return errors.Is(err, ErrLLMUnavailable)
}
