package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NotFound reports a missing entity. It is also used when the caller has no
// right to see an entity, so a visibility failure is indistinguishable from
// absence on the wire.
func NotFound(kind string, id int64) *AppError {
	return New(http.StatusNotFound, fmt.Sprintf("%s with id %d not found", kind, id))
}

// FieldValidation reports caller-supplied data violating a business rule.
func FieldValidation(field, message string) *AppError {
	return New(http.StatusBadRequest, fmt.Sprintf("invalid %s: %s", field, message))
}

// UnsupportedState reports an unrecognized booking state filter token.
func UnsupportedState(value string) *AppError {
	return New(http.StatusBadRequest, "Unknown state: "+value)
}

// Conflict reports a uniqueness violation (e.g., duplicate email).
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}
