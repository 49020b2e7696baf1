package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation error")
	ErrInsufficientWords  = errors.New("insufficient words")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrInvalidState       = errors.New("invalid state")
	ErrServiceUnavailable = errors.New("service unavailable")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
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

// ServiceErrorKind classifies a failure of an external collaborator.
type ServiceErrorKind string

const (
	ServiceErrorNetwork   ServiceErrorKind = "NETWORK"
	ServiceErrorStatus    ServiceErrorKind = "STATUS"
	ServiceErrorMalformed ServiceErrorKind = "MALFORMED"
	ServiceErrorUnusable  ServiceErrorKind = "UNUSABLE"
	ServiceErrorDisabled  ServiceErrorKind = "DISABLED"
)

// ServiceError is returned by external lookups (translation). Status is the
// HTTP status code when Kind is ServiceErrorStatus.
type ServiceError struct {
	Kind   ServiceErrorKind
	Status int
	Err    error
}

func (e *ServiceError) Error() string {
	switch {
	case e.Kind == ServiceErrorStatus:
		return fmt.Sprintf("service: unexpected status %d", e.Status)
	case e.Err != nil:
		return fmt.Sprintf("service: %s: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("service: %s", e.Kind)
	}
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ServiceError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrServiceUnavailable}
	}
	return []error{ErrServiceUnavailable, e.Err}
}

// NewServiceError creates a ServiceError of the given kind.
func NewServiceError(kind ServiceErrorKind, err error) *ServiceError {
	return &ServiceError{Kind: kind, Err: err}
}
