package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError independently of its transport status.
type Kind string

const (
	KindInvalidInput     Kind = "invalid_input"
	KindInvalidParameter Kind = "invalid_parameter"
	KindNotFound         Kind = "not_found"
	KindInternal         Kind = "internal_error"
	KindUnauthorized     Kind = "unauthorized"
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Error category exposed to clients
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
// The kind is derived from the status code.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForStatus(code),
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kindForStatus(code),
		Message: message,
		Err:     err,
	}
}

// InvalidInput reports a violated business rule.
func InvalidInput(format string, args ...any) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidInput,
		Message: fmt.Sprintf(format, args...),
	}
}

// InvalidParameter reports a structural problem inside a nested collection.
func InvalidParameter(format string, args ...any) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidParameter,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFound reports a missing entity.
func NotFound(format string, args ...any) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// Internal reports a broken invariant. The message is still shown to the caller,
// the wrapped error is not.
func Internal(err error, message string) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

// IsKind reports whether any AppError in err's chain has the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindUnauthorized
	case code >= 400 && code < 500:
		return KindInvalidInput
	default:
		return KindInternal
	}
}
