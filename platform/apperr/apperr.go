// Package apperr provides standardized error types for the gateway.
// Handlers and the backend forwarder return these typed errors, and the HTTP
// layer maps them to status codes and the response envelope.
package apperr

import (
	"fmt"
	"net/http"
)

// Kind represents the category of error.
type Kind int

const (
	// KindUnknown is the default error kind when none is specified.
	KindUnknown Kind = iota
	// KindUnauthorized indicates no valid session was presented.
	KindUnauthorized
	// KindForbidden indicates the session's role is outside the allowed set.
	KindForbidden
	// KindNotFound indicates the backend reported 404 for the resource.
	KindNotFound
	// KindBackend indicates a non-2xx backend response; Status carries the
	// backend's HTTP status, which is passed through to the client.
	KindBackend
	// KindUnavailable indicates the backend was unreachable.
	KindUnavailable
	// KindTimeout indicates the backend call exceeded its deadline.
	KindTimeout
	// KindInternal indicates an unexpected internal error.
	KindInternal
)

// Error is a gateway error with a typed Kind for HTTP mapping.
type Error struct {
	Kind    Kind
	Message string
	Op      string // Operation that failed (optional)
	Err     error  // Underlying cause (optional, logged, never sent to clients)
	Status  int    // Backend HTTP status for KindBackend (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for this error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindBackend:
		if e.Status >= 400 {
			return e.Status
		}
		return http.StatusBadGateway
	case KindUnavailable:
		return http.StatusBadGateway
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates a new error wrapping an underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithOp returns the error with the operation set.
func (e *Error) WithOp(op string) *Error {
	e.Op = op
	return e
}

// Convenience constructors for common error types.

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) *Error {
	return New(KindUnauthorized, message)
}

// Forbidden creates a forbidden error.
func Forbidden(message string) *Error {
	return New(KindForbidden, message)
}

// NotFound creates a not found error.
func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

// Backend creates an error that passes the backend's status through.
func Backend(status int, message string) *Error {
	return &Error{Kind: KindBackend, Message: message, Status: status}
}

// Unavailable creates an error for an unreachable backend.
func Unavailable(message string, err error) *Error {
	return Wrap(KindUnavailable, message, err)
}

// Timeout creates an error for a backend call that exceeded its deadline.
func Timeout(message string, err error) *Error {
	return Wrap(KindTimeout, message, err)
}

// GetKind extracts the error kind from an error.
// Returns KindUnknown if the error is not an *Error.
func GetKind(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return KindUnknown
}

// Is checks if err is an *Error with the given kind.
func Is(err error, kind Kind) bool {
	return GetKind(err) == kind
}
