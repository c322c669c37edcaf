package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidPayload  = errors.New("invalid payload shape")
	ErrValidation      = errors.New("validation failed")
	ErrExternalService = errors.New("external service error")
)

// InvalidPayloadError reports a stored document field (data, returnLocation)
// that could not be decoded for a single record.
type InvalidPayloadError struct {
	RecordID string
	Field    string
	Err      error
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("record %s: invalid %s: %v", e.RecordID, e.Field, e.Err)
}

func (e *InvalidPayloadError) Unwrap() []error {
	return []error{ErrInvalidPayload, e.Err}
}

// ValidationError lists the form fields that are missing or fail their
// character allow-list.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
