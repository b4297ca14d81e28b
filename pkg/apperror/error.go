// Package apperror carries an HTTP status alongside a user-facing message.
// The error middleware translates these into the response envelope; anything
// that is not an AppError is masked as a 500.
package apperror

import "net/http"

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Err }

func New(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError { return New(http.StatusBadRequest, message, nil) }

func Unauthorized(message string) *AppError { return New(http.StatusUnauthorized, message, nil) }

func Forbidden(message string) *AppError { return New(http.StatusForbidden, message, nil) }

func NotFound(message string) *AppError { return New(http.StatusNotFound, message, nil) }

func Conflict(message string) *AppError { return New(http.StatusConflict, message, nil) }

// Internal wraps an unexpected error behind a generic message; the cause is
// kept for the logs only.
func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
