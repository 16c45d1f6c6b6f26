package errdef

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorCode represents a specific error type for store operations.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the targeted row does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeConflict indicates a duplicate creation was resolved to an existing row.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeBackendUnavailable indicates the backing database cannot be reached.
	ErrCodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
)

// StoreError represents a structured error for store operations.
type StoreError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *StoreError) Unwrap() error {
	return e.Cause
}

// NewNotFound creates a NOT_FOUND error.
func NewNotFound(message string) *StoreError {
	return &StoreError{Code: ErrCodeNotFound, Message: message}
}

// NewConflict creates a CONFLICT error.
func NewConflict(message string) *StoreError {
	return &StoreError{Code: ErrCodeConflict, Message: message}
}

// NewInvalidArgument creates an INVALID_ARGUMENT error.
func NewInvalidArgument(message string) *StoreError {
	return &StoreError{Code: ErrCodeInvalidArgument, Message: message}
}

// NewBackendUnavailable creates a BACKEND_UNAVAILABLE error wrapping the transport cause.
func NewBackendUnavailable(message string, cause error) *StoreError {
	return &StoreError{Code: ErrCodeBackendUnavailable, Message: message, Cause: cause}
}

// CodeOf extracts the error code from err, walking the wrap chain.
// Returns an empty code when err carries no StoreError.
func CodeOf(err error) ErrorCode {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code
	}
	return ""
}

// IsNotFound reports whether err is a NOT_FOUND store error.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}
