package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an Error and decides its HTTP status.
type Kind int

const (
	KindUpstream Kind = iota
	KindValidation
	KindConflict
	KindAuth
	KindNotFound
)

// String returns a machine-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindConflict:
		return "CONFLICT"
	case KindAuth:
		return "UNAUTHORIZED"
	case KindNotFound:
		return "NOT_FOUND"
	default:
		return "UPSTREAM"
	}
}

// Status maps the kind to an HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is the single error type returned by account operations.
// Message is safe to show to clients; Err is the internal cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a 400 error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// Conflict creates a 409 error.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Auth creates a 401 error. cause may be nil.
func Auth(message string, cause error) *Error {
	return &Error{Kind: KindAuth, Message: message, Err: cause}
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Upstream creates a 500 error wrapping a database or blob store failure.
func Upstream(message string, cause error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: cause}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Status returns the HTTP status for err. Errors that are not *Error map to 500.
func Status(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Kind.Status()
	}
	return http.StatusInternalServerError
}
