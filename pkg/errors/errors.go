// Package errors defines the structured error type shared by the ECN services.
// Every error that crosses the HTTP or gRPC boundary is an *AppError carrying a stable
// machine-readable code and the HTTP status it maps to.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code defines the type for error codes.
type Code string

const (
	// CodeInvalidInput indicates a missing, malformed or non-numeric request value.
	CodeInvalidInput Code = "invalid_input"
	// CodeNotFound indicates the requested record does not exist.
	CodeNotFound Code = "not_found"
	// CodeUpstreamUnavailable indicates the store or cache could not be reached.
	CodeUpstreamUnavailable Code = "upstream_unavailable"
	// CodeInference indicates the model forward pass failed.
	CodeInference Code = "inference_error"
	// CodeInternal indicates an unexpected server-side failure.
	CodeInternal Code = "internal_error"
)

// AppError represents a structured application error
type AppError struct {
	Code       Code
	HTTPStatus int
	Message    string
	cause      error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *AppError with the same code, so sentinel
// values below work with errors.Is regardless of message or cause.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithError returns a copy of the error wrapping cause.
func (e *AppError) WithError(cause error) *AppError {
	cp := *e
	cp.cause = cause
	return &cp
}

// WithMessage returns a copy of the error with a different client-facing message.
func (e *AppError) WithMessage(msg string) *AppError {
	cp := *e
	cp.Message = msg
	return &cp
}

// NewError creates a new AppError with the specified parameters
func NewError(code Code, httpStatus int, message string) *AppError {
	return &AppError{Code: code, HTTPStatus: httpStatus, Message: message}
}

var (
	// ErrInvalidInput is returned for missing, malformed or non-numeric request values.
	ErrInvalidInput = NewError(CodeInvalidInput, http.StatusBadRequest, "invalid input")
	// ErrNotFound is returned when a record lookup has no match.
	ErrNotFound = NewError(CodeNotFound, http.StatusNotFound, "resource not found")
	// ErrUpstreamUnavailable is returned when the store or cache cannot serve the request.
	ErrUpstreamUnavailable = NewError(CodeUpstreamUnavailable, http.StatusServiceUnavailable, "upstream service unavailable")
	// ErrInference is returned when the model rejects its input.
	ErrInference = NewError(CodeInference, http.StatusInternalServerError, "model inference failed")
	// ErrInternal is the fallback for unexpected failures.
	ErrInternal = NewError(CodeInternal, http.StatusInternalServerError, "internal server error")
)

// InvalidInput creates an invalid_input error with a specific message.
func InvalidInput(format string, args ...interface{}) *AppError {
	return ErrInvalidInput.WithMessage(fmt.Sprintf(format, args...))
}

// NotFound creates a not_found error naming the missing resource.
func NotFound(resource, id string) *AppError {
	return ErrNotFound.WithMessage(fmt.Sprintf("%s %q not found", resource, id))
}

// Upstream wraps a store or cache failure.
func Upstream(cause error) *AppError {
	return ErrUpstreamUnavailable.WithError(cause)
}

// AsAppError extracts an *AppError from err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HTTPStatus returns the status err maps to, 500 for non-application errors.
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Is is a re-export of the standard library errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}
