package domain

import (
	"errors"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery signals a consultation request that fails validation.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrMissingCredential signals an inference provider configured without an API key.
	ErrMissingCredential = errors.New("missing inference credential")
	// ErrInferenceProvider signals a failure of the external inference service.
	ErrInferenceProvider = errors.New("inference provider error")
	// ErrInferenceQuotaExceeded signals an exhausted inference token budget.
	ErrInferenceQuotaExceeded = errors.New("inference quota exceeded")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrDatasetSchema signals a remedy table whose columns do not match the expected schema.
	ErrDatasetSchema = errors.New("dataset schema mismatch")
)

// ValidationError wraps ErrInvalidQuery with a message suitable for the end user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return ErrInvalidQuery.Error() + ": " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrInvalidQuery }

// NewValidationError creates a validation error for the given request field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
