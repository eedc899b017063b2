package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrCorruptState marks persisted archive data that cannot be read or decoded.
	ErrCorruptState = errors.New("corrupt state")
	// ErrStorageExhausted is returned when the store rejects a write even
	// after the reduced retry.
	ErrStorageExhausted = errors.New("storage exhausted")
	// ErrCollaboratorUnavailable wraps failures of external text/image generation.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")
)

// ErrorKind classifies an error for callers that present it.
type ErrorKind string

const (
	KindCorruptState            ErrorKind = "CORRUPT_STATE"
	KindStorageExhausted        ErrorKind = "STORAGE_EXHAUSTED"
	KindCollaboratorUnavailable ErrorKind = "COLLABORATOR_UNAVAILABLE"
	KindValidationFailed        ErrorKind = "VALIDATION_FAILED"
	KindNotFound                ErrorKind = "NOT_FOUND"
	KindInternal                ErrorKind = "INTERNAL"
)

func (k ErrorKind) String() string { return string(k) }

// KindOf returns the ErrorKind of err. A nil error has no kind ("").
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidationFailed
	case errors.Is(err, ErrStorageExhausted):
		return KindStorageExhausted
	case errors.Is(err, ErrCorruptState):
		return KindCorruptState
	case errors.Is(err, ErrCollaboratorUnavailable):
		return KindCollaboratorUnavailable
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
