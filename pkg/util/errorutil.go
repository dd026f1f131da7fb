package util

import (
	"errors"
	"fmt"
)

// Error codes surfaced by the core.
const (
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeUnauthorized       = "UNAUTHORIZED"
)

// DomainError standardizes application errors. Validation failures
// carry the per-field message map; everything else carries a single
// message. Errors are returned, never panicked.
type DomainError struct {
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewValidationFailed wraps a field→message map in an error value.
func NewValidationFailed(fields map[string]string) error {
	return &DomainError{Code: CodeValidationFailed, Message: "validation failed", Fields: fields}
}

// NewInvalidCredentials returns the generic login failure. The message
// never reveals whether the identifier or the secret was wrong.
func NewInvalidCredentials() error {
	return &DomainError{Code: CodeInvalidCredentials, Message: "invalid credentials"}
}

func NewNotFound(resource string) error {
	return &DomainError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewConflict(message string) error {
	return &DomainError{Code: CodeConflict, Message: message}
}

func NewUnauthorized(message string) error {
	return &DomainError{Code: CodeUnauthorized, Message: message}
}

// IsCode reports whether err is a DomainError with the given code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// FieldsOf extracts the validation field map from an error, or nil if
// err is not a validation failure.
func FieldsOf(err error) map[string]string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) && domainErr.Code == CodeValidationFailed {
		return domainErr.Fields
	}
	return nil
}
