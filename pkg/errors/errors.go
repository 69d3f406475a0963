// Package errors provides structured error types for demes.
//
// Every failure raised while building, validating or loading a demographic
// model carries one of a small set of codes:
//   - TYPE_ERROR: a field has the wrong container kind (e.g. ancestors given
//     as a scalar where a list is expected)
//   - VALUE_ERROR: a numeric range, ordering, partition, sum or existence
//     invariant is violated
//   - INVALID_FORMAT, FILE_NOT_FOUND: serialization collaborators
//   - INTERNAL_ERROR: unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeValue, "deme %q: proportions must sum to 1", id)
//	if errors.IsValueError(err) {
//	    // reject the model
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Model errors
	ErrCodeType  Code = "TYPE_ERROR"
	ErrCodeValue Code = "VALUE_ERROR"

	// Serialization errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Typef is shorthand for New(ErrCodeType, ...).
func Typef(format string, args ...any) *Error {
	return New(ErrCodeType, format, args...)
}

// Valuef is shorthand for New(ErrCodeValue, ...).
func Valuef(format string, args ...any) *Error {
	return New(ErrCodeValue, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsTypeError reports whether err is a structural/type error.
func IsTypeError(err error) bool { return Is(err, ErrCodeType) }

// IsValueError reports whether err is a value/consistency error.
func IsValueError(err error) bool { return Is(err, ErrCodeValue) }

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
