package domain

import (
	"errors"
	"fmt"
)

// ErrorCode represents a machine-readable error code
type ErrorCode string

const (
	// Request building errors
	ErrorCodeMissingCredential     ErrorCode = "MISSING_CREDENTIAL"
	ErrorCodeInvalidField          ErrorCode = "INVALID_FIELD"
	ErrorCodeUnsupportedHashMethod ErrorCode = "UNSUPPORTED_HASH_METHOD"

	// Payment Gateway Errors
	ErrorCodeGatewayError ErrorCode = "GATEWAY_ERROR"
)

// DomainError represents a structured domain error with error code and context
type DomainError struct {
	Err     error
	Details map[string]interface{}
	Code    ErrorCode
	Message string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a DomainError carrying the same code, so that
// errors.Is(err, ErrInvalidField) matches every invalid-field error.
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// WithDetail adds a detail field to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Field returns the provider field name attached to the error, if any.
func (e *DomainError) Field() string {
	f, _ := e.Details["field"].(string)
	return f
}

// NewDomainError creates a new domain error
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// WrapError wraps an existing error with a domain error code
func WrapError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Err:     err,
	}
}

// NewMissingCredential reports a required authentication field that is empty
// when the request is collected.
func NewMissingCredential(field string) *DomainError {
	return NewDomainError(ErrorCodeMissingCredential, fmt.Sprintf("%s is required", field)).
		WithDetail("field", field)
}

// NewInvalidField reports a value that fails a provider format rule.
func NewInvalidField(field, value, reason string) *DomainError {
	return NewDomainError(ErrorCodeInvalidField, fmt.Sprintf("%s %s", field, reason)).
		WithDetail("field", field).
		WithDetail("value", value)
}

// IsDomainError checks if an error is a DomainError with the given code
func IsDomainError(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error, returns empty string if not a DomainError
func GetErrorCode(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ""
}

// GetField extracts the provider field name from an error, returns empty string if none
func GetField(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Field()
	}
	return ""
}

// IsValidationError checks if an error was raised while collecting request fields
func IsValidationError(err error) bool {
	code := GetErrorCode(err)
	return code == ErrorCodeMissingCredential ||
		code == ErrorCodeInvalidField ||
		code == ErrorCodeUnsupportedHashMethod
}

// IsGatewayError checks if an error is a payment gateway error.
// A declined transaction is a Result with status ERROR, not an error.
func IsGatewayError(err error) bool {
	return GetErrorCode(err) == ErrorCodeGatewayError
}

// Sentinel instances for errors.Is matching
var (
	ErrMissingCredential     = NewDomainError(ErrorCodeMissingCredential, "required credential missing")
	ErrInvalidField          = NewDomainError(ErrorCodeInvalidField, "invalid field value")
	ErrUnsupportedHashMethod = NewDomainError(ErrorCodeUnsupportedHashMethod, "unsupported hash method")

	ErrGatewayError = NewDomainError(ErrorCodeGatewayError, "payment gateway error")
)

// Plain errors
var (
	ErrInvalidGatewayResponse = errors.New("invalid gateway response")
)
