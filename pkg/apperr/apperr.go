// Package apperr defines the application error taxonomy.
//
// Services return *apperr.Error values; the HTTP layer maps them onto a
// status code and a machine-readable error code, never leaking internals
// for INTERNAL errors.
package apperr

import (
	"errors"
	"net/http"
)

// Error is an application error carrying an HTTP status and a stable
// machine-readable code alongside the human-readable message.
type Error struct {
	Status  int    // HTTP status code
	Code    string // stable error code, e.g. "INVALID_STATE"
	Message string // safe to show to the caller
	Err     error  // underlying cause, logged but never serialised
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ── Constructors ─────────────────────────────────────────────────────────────

// Unauthenticated: missing or invalid credential (401).
func Unauthenticated(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "UNAUTHENTICATED", Message: message}
}

// Forbidden: valid credential, insufficient role or ownership (403).
func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "FORBIDDEN", Message: message}
}

// InvalidInput: malformed request body or parameters (400).
func InvalidInput(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "INVALID_INPUT", Message: message}
}

// NotFound: referenced entity is absent (404).
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// Conflict: duplicate unique field (409).
func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Code: "CONFLICT", Message: message}
}

// InvalidState: operation not valid for the entity's current state (409).
func InvalidState(message string) *Error {
	return &Error{Status: http.StatusConflict, Code: "INVALID_STATE", Message: message}
}

// Internal: unexpected persistence or dependency failure (500). The
// cause is retained for logging; the caller sees only a generic message.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Code: "INTERNAL", Message: "Internal server error", Err: err}
}

// From extracts an *Error from err, wrapping unknown errors as Internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}

// Is reports whether err carries the given error code.
func Is(err error, code string) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Code == code
}
