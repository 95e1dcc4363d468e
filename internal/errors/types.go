// Package errors provides the structured error types used across the marquee
// content pipeline. Every error produced by the pipeline carries a category,
// a stable code, and optional context so handlers can decide between
// recovering locally (a bad section), rejecting a request (a bad signature),
// and propagating upstream failures unchanged.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of pipeline errors.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeSecurity   ErrorType = "security"
	ErrorTypeContent    ErrorType = "content"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeInternal   ErrorType = "internal"
)

// Common error codes.
const (
	ErrCodeInvalidSectionData  = "ERR_INVALID_SECTION_DATA"
	ErrCodeUnknownSectionType  = "ERR_UNKNOWN_SECTION_TYPE"
	ErrCodeUnauthorized        = "ERR_UNAUTHORIZED"
	ErrCodeBadRequest          = "ERR_BAD_REQUEST"
	ErrCodeFetchFailed         = "ERR_FETCH_FAILED"
	ErrCodeDocumentNotFound    = "ERR_DOCUMENT_NOT_FOUND"
	ErrCodeConfigInvalid       = "ERR_CONFIG_INVALID"
	ErrCodeInternalError       = "ERR_INTERNAL"
)

// PipelineError is a structured error with category, code and context.
type PipelineError struct {
	Type        ErrorType
	Code        string
	Message     string
	Cause       error
	Context     map[string]interface{}
	Recoverable bool
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *PipelineError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison on type and code.
func (e *PipelineError) Is(target error) bool {
	var t *PipelineError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *PipelineError) WithContext(key string, value interface{}) *PipelineError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// NewValidationError creates a validation error. Validation errors are
// recoverable: the composer skips the offending section and continues.
func NewValidationError(code, message string) *PipelineError {
	return &PipelineError{
		Type:        ErrorTypeValidation,
		Code:        code,
		Message:     message,
		Recoverable: true,
	}
}

// NewSecurityError creates a security error.
func NewSecurityError(code, message string) *PipelineError {
	return &PipelineError{
		Type:        ErrorTypeSecurity,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewNetworkError creates a network error wrapping an upstream failure.
func NewNetworkError(code, message string, cause error) *PipelineError {
	return &PipelineError{
		Type:        ErrorTypeNetwork,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(code, message string) *PipelineError {
	return &PipelineError{
		Type:        ErrorTypeConfig,
		Code:        code,
		Message:     message,
		Recoverable: false,
	}
}

// NewInternalError creates an internal error.
func NewInternalError(code, message string, cause error) *PipelineError {
	return &PipelineError{
		Type:        ErrorTypeInternal,
		Code:        code,
		Message:     message,
		Cause:       cause,
		Recoverable: false,
	}
}

// IsRecoverable checks if an error may be recovered from locally.
func IsRecoverable(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Recoverable
	}

	return false
}

// IsSecurityError checks if an error is security-related.
func IsSecurityError(err error) bool {
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.Type == ErrorTypeSecurity
	}

	return false
}

// ErrUnauthorized creates the opaque unauthorized error surfaced by the
// webhook endpoints. It deliberately carries no detail about which check
// failed.
func ErrUnauthorized() *PipelineError {
	return NewSecurityError(ErrCodeUnauthorized, "unauthorized")
}

// ErrBadRequest creates a client error for a missing or malformed payload
// field.
func ErrBadRequest(field string) *PipelineError {
	return NewValidationError(ErrCodeBadRequest, "missing or invalid field: "+field)
}

// ErrFetchFailed wraps a content store failure. The pipeline does not retry;
// the rendering layer decides what to show.
func ErrFetchFailed(cause error) *PipelineError {
	return NewNetworkError(ErrCodeFetchFailed, "content store fetch failed", cause)
}
