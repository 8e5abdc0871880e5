package web

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is an API error answered as {"code": ..., "message": ...} with the
// HTTP status Status.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusCode returns the HTTP status of the error.
func (e *Error) StatusCode() int {
	return e.Status
}

// Error returns "<code>: <message>".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates an error for status whose code is the snake cased status
// text, for example not_found.
func NewError(status int, message string) error {
	return &Error{
		Code:    strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_"),
		Message: message,
		Status:  status,
	}
}

// NewErrorf is NewError with a formatted message.
func NewErrorf(status int, format string, args ...any) error {
	return NewError(status, fmt.Sprintf(format, args...))
}

// BadRequestErrorf returns a 400 error.
func BadRequestErrorf(format string, args ...any) error {
	return NewErrorf(http.StatusBadRequest, format, args...)
}

// NotFoundErrorf returns a 404 error.
func NotFoundErrorf(format string, args ...any) error {
	return NewErrorf(http.StatusNotFound, format, args...)
}

// UnsupportedMediaTypeErrorf returns a 415 error.
func UnsupportedMediaTypeErrorf(format string, args ...any) error {
	return NewErrorf(http.StatusUnsupportedMediaType, format, args...)
}
