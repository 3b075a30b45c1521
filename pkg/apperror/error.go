package apperror

import (
	"errors"
	"net/http"
)

// Kind is the stable error category returned to clients.
type Kind string

const (
	KindValidation      Kind = "ValidationError"
	KindConflict        Kind = "Conflict"
	KindUnauthorized    Kind = "Unauthorized"
	KindForbidden       Kind = "Forbidden"
	KindNotFound        Kind = "NotFound"
	KindTooManyRequests Kind = "TooManyRequests"
	KindInternal        Kind = "InternalError"
	KindUnavailable     Kind = "ServiceUnavailable"
)

type AppError struct {
	Code    int      `json:"code"`
	Kind    Kind     `json:"kind"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Validation carries field-level messages in Details.
func Validation(message string, details ...string) *AppError {
	e := New(http.StatusUnprocessableEntity, KindValidation, message, nil)
	e.Details = details
	return e
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, KindConflict, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, message, nil)
}

func TooManyRequests(message string) *AppError {
	return New(http.StatusTooManyRequests, KindTooManyRequests, message, nil)
}

func Unavailable(message string) *AppError {
	return New(http.StatusServiceUnavailable, KindUnavailable, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindInternal, "Internal Server Error", err)
}

// KindOf reports the kind of err, treating anything that is not an AppError as internal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
