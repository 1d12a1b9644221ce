// Package errors defines the typed error catalog shared by every layer.
// Navigation failures are values the caller branches on, never panics.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// Navigation domain errors
	ErrorTypeMissingLocation ErrorType = "MISSING_LOCATION"
	ErrorTypeInvalidLocation ErrorType = "INVALID_LOCATION"
	ErrorTypeNoPath          ErrorType = "NO_PATH"
	ErrorTypeMalformedGraph  ErrorType = "MALFORMED_GRAPH"

	// Application errors
	ErrorTypeValidation  ErrorType = "VALIDATION"
	ErrorTypeInternal    ErrorType = "INTERNAL"
	ErrorTypeTimeout     ErrorType = "TIMEOUT"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
)

// AppError represents an application-specific error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode adds an error code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause wraps an underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// captureStackTrace captures the current stack trace
func captureStackTrace() string {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := ""
	for {
		frame, more := frames.Next()
		stack += fmt.Sprintf("%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return stack
}

// Constructor functions for the navigation error catalog

// NewMissingLocationError reports blank start/end fields on a navigation
// request. The fields slice names which of the two were empty.
func NewMissingLocationError(fields ...string) *AppError {
	return &AppError{
		Type:       ErrorTypeMissingLocation,
		Message:    fmt.Sprintf("missing required location field(s): %s", strings.Join(fields, ", ")),
		Code:       "MISSING_LOCATION",
		Details:    map[string]interface{}{"fields": fields},
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// NewInvalidLocationError reports location keys that are not part of the
// campus. Keys are reported in their normalized form.
func NewInvalidLocationError(keys ...string) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidLocation,
		Message:    fmt.Sprintf("unknown location(s): %s", strings.Join(keys, ", ")),
		Code:       "INVALID_LOCATION",
		Details:    map[string]interface{}{"keys": keys},
		HTTPStatus: http.StatusNotFound,
		StackTrace: captureStackTrace(),
	}
}

// NewNoPathError reports that two known locations are not connected.
func NewNoPathError(start, end string) *AppError {
	return &AppError{
		Type:       ErrorTypeNoPath,
		Message:    fmt.Sprintf("no path exists between '%s' and '%s'", start, end),
		Code:       "NO_PATH",
		Details:    map[string]interface{}{"start": start, "end": end},
		HTTPStatus: http.StatusUnprocessableEntity,
		StackTrace: captureStackTrace(),
	}
}

// NewMalformedGraphError reports an inconsistent campus definition. It is
// raised during construction and treated as fatal by callers.
func NewMalformedGraphError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeMalformedGraph,
		Message:    message,
		Code:       "MALFORMED_GRAPH",
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		StackTrace: captureStackTrace(),
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		StackTrace: captureStackTrace(),
	}
}

// NewTimeoutError creates a timeout error
func NewTimeoutError(operation string) *AppError {
	return &AppError{
		Type:       ErrorTypeTimeout,
		Message:    fmt.Sprintf("operation '%s' timed out", operation),
		HTTPStatus: http.StatusRequestTimeout,
		StackTrace: captureStackTrace(),
	}
}

// NewUnavailableError creates a service unavailable error
func NewUnavailableError(service string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnavailable,
		Message:    fmt.Sprintf("service '%s' is unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
		StackTrace: captureStackTrace(),
	}
}

// Helper functions

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsMissingLocation checks if an error reports blank location fields
func IsMissingLocation(err error) bool {
	return IsType(err, ErrorTypeMissingLocation)
}

// IsInvalidLocation checks if an error reports unknown location keys
func IsInvalidLocation(err error) bool {
	return IsType(err, ErrorTypeInvalidLocation)
}

// IsNoPath checks if an error reports disconnected locations
func IsNoPath(err error) bool {
	return IsType(err, ErrorTypeNoPath)
}

// IsMalformedGraph checks if an error reports a broken campus definition
func IsMalformedGraph(err error) bool {
	return IsType(err, ErrorTypeMalformedGraph)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return IsType(err, ErrorTypeInternal)
}

// HTTPStatusFor maps an error to the status the transport should answer
// with, falling back to 500 for anything outside the catalog.
func HTTPStatusFor(err error) int {
	if appErr := GetAppError(err); appErr != nil && appErr.HTTPStatus != 0 {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// If it's already an AppError, add context to message
	if appErr := GetAppError(err); appErr != nil {
		appErr.Message = fmt.Sprintf("%s: %s", message, appErr.Message)
		return appErr
	}

	// Otherwise create a new internal error
	return NewInternalError(message).WithCause(err)
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}
