// Package apperr defines the typed errors business flows raise and the
// transport boundary renders. Every business-rule failure carries the HTTP
// status it maps to, so handlers never have to guess.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a business-rule failure with a user-facing message and a status code.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New constructs an Error with an explicit status code.
func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// Validation reports malformed or missing input (400).
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...any) *Error {
	return Validation(fmt.Sprintf(format, args...))
}

// Unauthorized reports failed authentication (401).
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// NotFound reports a missing user, role, or session (404).
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict reports a uniqueness violation such as a duplicate email (409).
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Conflictf is Conflict with formatting.
func Conflictf(format string, args ...any) *Error {
	return Conflict(fmt.Sprintf(format, args...))
}

// StatusOf resolves the HTTP status for err. Errors that are not *Error
// map to 500.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}
