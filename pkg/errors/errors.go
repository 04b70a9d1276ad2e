// Package errors provides structured error types for polaroid.
//
// This package defines error codes and types that enable:
//   - Machine-readable error codes for programmatic handling
//   - User-friendly messages for the CLI
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a naming convention by category:
//   - INVALID_*, UNKNOWN_FIELD: input validation failures
//   - METADATA_EXTRACTION, NO_IMAGE, HANDLE_RELEASED: composition errors
//   - RESOURCE_LOAD, RASTERIZATION, EXPORT_*: capture and delivery errors
//   - INTERNAL_ERROR: unexpected internal errors
//
// # Handling
//
// Every failure that crosses a package boundary carries a [Code] so that
// callers can decide how to react without string matching:
//   - METADATA_EXTRACTION is absorbed; the composition proceeds without metadata.
//   - RESOURCE_LOAD and RASTERIZATION abort the current export only.
//   - UNKNOWN_FIELD is a programmer error (a toggle named a field that does not exist).
//   - EXPORT_IN_FLIGHT rejects a capture request while another one is running.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownField, "unknown field %q", name)
//	if errors.Is(err, errors.ErrCodeUnknownField) {
//	    // Handle the contract violation
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeResourceLoad, ctx.Err(), "image %s", name)
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidStyle Code = "INVALID_STYLE"
	ErrCodeInvalidFont  Code = "INVALID_FONT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"
	ErrCodeUnknownField Code = "UNKNOWN_FIELD"

	// Composition errors
	ErrCodeMetadataExtraction Code = "METADATA_EXTRACTION"
	ErrCodeNoImage            Code = "NO_IMAGE"
	ErrCodeHandleReleased     Code = "HANDLE_RELEASED"

	// Capture errors
	ErrCodeResourceLoad   Code = "RESOURCE_LOAD"
	ErrCodeRasterization  Code = "RASTERIZATION"
	ErrCodeExportInFlight Code = "EXPORT_IN_FLIGHT"
	ErrCodeExportWrite    Code = "EXPORT_WRITE"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
// The code is what callers branch on; the message is what users see.
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
// The message follows fmt.Sprintf conventions.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
// The cause stays reachable through errors.Is and errors.As, so
// context.DeadlineExceeded can still be detected under a RESOURCE_LOAD code.
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

// IsTimeout reports whether err is a resource load failure caused by a deadline.
// The CLI uses it to suggest raising --timeout.
func IsTimeout(err error) bool {
	return Is(err, ErrCodeResourceLoad) && errors.Is(err, context.DeadlineExceeded)
}

// Aborts reports whether err aborts the export it occurred in.
// Extraction failures are the only absorbed category: the photo is still
// composed, just without the metadata that could not be read.
func Aborts(err error) bool {
	return err != nil && !Is(err, ErrCodeMetadataExtraction)
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
