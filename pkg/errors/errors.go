// Package errors provides standardized error definitions for the Aurora
// persistence core.
//
// Every failure surfaced by the storage layer is classified into one of a
// small set of codes so callers can branch on the kind of failure without
// inspecting driver-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured application error.
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"` // Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails adds details to the error.
func (e *Error) WithDetails(details interface{}) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// WithError wraps another error.
func (e *Error) WithError(err error) *Error {
	clone := *e
	clone.Err = err
	return &clone
}

// New creates a new Error.
func New(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an error code and message. The message
// never embeds err's text, so driver internals stay out of caller-facing
// output; the cause remains reachable through Unwrap for logging.
func Wrap(err error, code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes used by the persistence core.
const (
	// ErrCodeValidation indicates a caller-supplied value violated a
	// documented invariant; rejected before any statement is issued.
	ErrCodeValidation = "VALIDATION_FAILED"
	// ErrCodeNotFound indicates a lookup expecting exactly one row found zero.
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAmbiguous indicates a lookup expecting exactly one row found more.
	ErrCodeAmbiguous = "AMBIGUOUS_RESULT"
	// ErrCodeStorage indicates a failure reported by the storage engine.
	ErrCodeStorage = "STORAGE_ERROR"
	// ErrCodeConversion indicates a row mapper received an unexpected column shape.
	ErrCodeConversion = "CONVERSION_ERROR"
)

// Predefined errors.
var (
	ErrValidation = New(ErrCodeValidation, "Validation failed")
	ErrNotFound   = New(ErrCodeNotFound, "Record not found")
	ErrAmbiguous  = New(ErrCodeAmbiguous, "Query matched more than one record")
	ErrStorage    = New(ErrCodeStorage, "Storage operation failed")
	ErrConversion = New(ErrCodeConversion, "Row conversion failed")
)

// Validation creates a validation error with a specific message.
func Validation(format string, args ...interface{}) *Error {
	return New(ErrCodeValidation, fmt.Sprintf(format, args...))
}

// NotFound creates a not-found error naming the entity that was looked up.
func NotFound(entity string) *Error {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", entity))
}

// Storage wraps a driver error as a storage error.
func Storage(err error, message string) *Error {
	return Wrap(err, ErrCodeStorage, message)
}

// Conversion wraps a row-mapping failure as a conversion error.
func Conversion(err error, message string) *Error {
	return Wrap(err, ErrCodeConversion, message)
}

// Code returns the error code of err, or empty string if err is not an *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return Code(err) == ErrCodeValidation }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return Code(err) == ErrCodeNotFound }

// IsAmbiguous reports whether err is an ambiguous-result error.
func IsAmbiguous(err error) bool { return Code(err) == ErrCodeAmbiguous }

// IsStorage reports whether err is a storage error.
func IsStorage(err error) bool { return Code(err) == ErrCodeStorage }

// IsConversion reports whether err is a conversion error.
func IsConversion(err error) bool { return Code(err) == ErrCodeConversion }
