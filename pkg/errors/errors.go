// Package errors provides structured error types for labutil.
//
// Every failure surfaced by the plot engine, the preset library and the
// experiment enumerator carries a machine-readable [Code]. Two codes matter
// most to callers:
//
//   - CONFIG_ERROR: malformed or incomplete configuration, detected before
//     any table row is processed (missing grouping column, missing callback,
//     unknown preset, inconsistent arity).
//   - CALLBACK_ERROR: a failure raised inside a lifecycle callback while a
//     plot is being iterated.
//
// Neither kind is retried; both abort the current invocation.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfig, "column %q not in table", col)
//	if errors.Is(err, errors.ErrCodeConfig) {
//	    // configuration problem
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeCallback, origErr, "save figure %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeConfig       Code = "CONFIG_ERROR"
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"
	ErrCodeCycle        Code = "DEPENDENCY_CYCLE"

	// Iteration errors
	ErrCodeCallback Code = "CALLBACK_ERROR"

	// Resource errors
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

// Config is shorthand for New(ErrCodeConfig, ...).
func Config(format string, args ...any) *Error {
	return New(ErrCodeConfig, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for the outermost *Error and compares its code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool { return Is(err, ErrCodeConfig) }

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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
