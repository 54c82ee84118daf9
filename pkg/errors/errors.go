// Package errors provides structured error types for alphabound.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, API, and classifier
//   - Machine-readable error codes for programmatic handling
//   - Distinguishing skippable evaluation failures from fatal faults
//
// # Error Codes
//
// The classifier treats three codes as skippable: a registry entry that
// fails with DOMAIN_UNDEFINED, SOLVER_UNAVAILABLE, or TIMEOUT is dropped
// from the aggregate and evaluation continues. Every other code is fatal
// and surfaces to the caller immediately.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDomainUndefined, "kwok bound needs max degree > 0")
//	if errors.Skippable(err) {
//	    // drop this bound, keep classifying
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSolverUnavailable, origErr, "sdp did not converge")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Skippable evaluation failures. A bound or property that fails with
	// one of these is excluded from the aggregate, never fatal.
	ErrCodeDomainUndefined   Code = "DOMAIN_UNDEFINED"
	ErrCodeSolverUnavailable Code = "SOLVER_UNAVAILABLE"
	ErrCodeTimeout           Code = "TIMEOUT"

	// Input validation errors
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

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

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Skippable reports whether an evaluation error may be dropped by the
// classifier: a failed precondition, a solver that did not converge, or
// a per-entry timeout. Everything else aborts classification.
func Skippable(err error) bool {
	switch GetCode(err) {
	case ErrCodeDomainUndefined, ErrCodeSolverUnavailable, ErrCodeTimeout:
		return true
	}
	return false
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
