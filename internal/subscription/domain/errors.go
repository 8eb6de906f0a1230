package domain

import (
	"fmt"
	"strings"
)

// FieldError describes a single failing request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned for bad or missing input
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Message)
	}
	return strings.Join(parts, "; ")
}

// NotFoundError is returned when an account identity does not resolve
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// ConflictError is returned when a concurrent writer already holds the interest
type ConflictError struct {
	Interest Interest
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("subscription for interest %s already exists", e.Interest)
}

// ProviderError carries the raw failure text of the store or push provider
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps err, keeping its message verbatim
func NewProviderError(err error) *ProviderError {
	return &ProviderError{Message: err.Error(), Err: err}
}
