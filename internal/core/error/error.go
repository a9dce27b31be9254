package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is a user-facing fallback when internal errors occur.
	SystemErrorMessage = "internal server error"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage is used when a Redis key does not exist.
	RedisNotFoundMessage = "redis key not found"
)

// AppError wraps an underlying error with an HTTP status and safe message.
type AppError struct {
	Err     error
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether the target matches the underlying error.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// New creates a new AppError with the provided information.
func New(err error, status int, message string) *AppError {
	return &AppError{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

func NotFound(err error, message string) *AppError {
	return New(err, http.StatusNotFound, message)
}

func BadRequest(err error, message string) *AppError {
	return New(err, http.StatusBadRequest, message)
}

func Conflict(err error, message string) *AppError {
	return New(err, http.StatusConflict, message)
}

func Unprocessable(err error, message string) *AppError {
	return New(err, http.StatusUnprocessableEntity, message)
}

func Unavailable(err error, message string) *AppError {
	return New(err, http.StatusServiceUnavailable, message)
}

// StatusOf returns the HTTP status carried by the first AppError in err's
// chain, or 500 when there is none.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status != 0 {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// MessageOf returns the safe message of the first AppError in err's chain.
// Errors without one are reported as SystemErrorMessage so internals never
// reach the caller.
func MessageOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return SystemErrorMessage
}
