package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed gateway error carrying the HTTP status it maps to.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Sentinels. Handlers and services Clone them to override the message.
var (
	ErrNotFound          = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrForbidden         = New("FORBIDDEN", http.StatusForbidden, "forbidden")
	ErrUnauthorized      = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrValidation        = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal          = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrBackend           = New("BACKEND_UNAVAILABLE", http.StatusBadGateway, "an error occurred")
	ErrUnsupportedFormat = New("UNSUPPORTED_FORMAT", http.StatusBadRequest, "unsupported export format")
	ErrCacheMiss         = New("CACHE_MISS", http.StatusNotFound, "cache miss")
)

// FromBackendStatus maps a status returned by the lab backend onto the gateway error the
// caller sees. Client errors keep their meaning; everything else becomes a 502.
func FromBackendStatus(status int, message string, cause error) *Error {
	if message == "" {
		message = ErrBackend.Message
	}
	switch status {
	case http.StatusNotFound:
		return Wrap(cause, ErrNotFound.Code, http.StatusNotFound, message)
	case http.StatusUnauthorized:
		return Wrap(cause, ErrUnauthorized.Code, http.StatusUnauthorized, message)
	case http.StatusForbidden:
		return Wrap(cause, ErrForbidden.Code, http.StatusForbidden, message)
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return Wrap(cause, ErrValidation.Code, http.StatusBadRequest, message)
	default:
		return Wrap(cause, ErrBackend.Code, ErrBackend.Status, message)
	}
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
