// Package domain defines the core value types for redislite.
package domain

import (
	"errors"
	"fmt"
)

// DomainError is an error with a stable kind code.
//
// Two DomainErrors match under errors.Is when their codes are equal, so
// callers test the kind with errors.Is(err, domain.ErrParse) regardless of
// the details attached.
type DomainError struct {
	Code    string // Error kind (e.g., "PARSE")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// Detailf is WithDetails with a format string.
func (e *DomainError) Detailf(format string, args ...any) *DomainError {
	return e.WithDetails(fmt.Sprintf(format, args...))
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Error kind codes.
const (
	CodeIO         = "IO"
	CodeParse      = "PARSE"
	CodeValidation = "VALIDATION"
	CodeState      = "STATE"
	CodeRDBFormat  = "RDB_FORMAT"
)

var (
	// ErrIO indicates a transport or file failure.
	ErrIO = NewDomainError(CodeIO, "io error")

	// ErrParse indicates malformed RESP bytes.
	ErrParse = NewDomainError(CodeParse, "protocol error")

	// ErrValidation indicates well-formed RESP carrying an invalid command.
	ErrValidation = NewDomainError(CodeValidation, "invalid command")

	// ErrState indicates a component was used in the wrong lifecycle state.
	ErrState = NewDomainError(CodeState, "invalid state")

	// ErrRDBFormat indicates a malformed snapshot file.
	ErrRDBFormat = NewDomainError(CodeRDBFormat, "malformed rdb snapshot")
)

// Kind returns a short lowercase label for the error kind, suitable as a
// metric label. Errors that are not DomainErrors report "other".
func Kind(err error) string {
	switch GetErrorCode(err) {
	case CodeIO:
		return "io"
	case CodeParse:
		return "parse"
	case CodeValidation:
		return "validation"
	case CodeState:
		return "state"
	case CodeRDBFormat:
		return "rdb_format"
	default:
		return "other"
	}
}
