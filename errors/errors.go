package errors

import (
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ValidationError  ErrorType = "VALIDATION_ERROR"
	NotFoundError    ErrorType = "NOT_FOUND"
	MethodNotAllowed ErrorType = "METHOD_NOT_ALLOWED"
	ServerError      ErrorType = "SERVER_ERROR"
	DependencyError  ErrorType = "DEPENDENCY_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying error to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// GetHTTPStatus returns the status code the error should be rendered with.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus == 0 {
		return getHTTPStatus(e.Type)
	}
	return e.HTTPStatus
}

// Wrap wraps a raw error with AppError context
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// NotFound is returned for routes that are not part of the health API.
func NotFound(method, path string) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Message:    "Route not found",
		Detail:     fmt.Sprintf("%s %s", method, path),
		HTTPStatus: http.StatusNotFound,
	}
}

func NotAllowed(method, path string) *AppError {
	return &AppError{
		Type:       MethodNotAllowed,
		Message:    "Method not allowed",
		Detail:     fmt.Sprintf("%s %s", method, path),
		HTTPStatus: http.StatusMethodNotAllowed,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	case DependencyError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
