// Package httperr defines the typed HTTP error family used across the
// request pipeline. Every client-facing failure is one of these; anything
// else propagates as a server fault.
package httperr

import (
	"fmt"
	"net/http"
)

// FieldError carries a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is an HTTP-mapped error. Detail is either a plain string or a
// []FieldError for validation failures; it is serialized verbatim into the
// {"detail": ...} envelope at the pipeline boundary.
type Error struct {
	Status int
	Detail any
}

func (e *Error) Error() string {
	return fmt.Sprintf("http %d: %v", e.Status, e.Detail)
}

// New builds an Error with an arbitrary status code.
func New(status int, detail string) *Error {
	return &Error{Status: status, Detail: detail}
}

// MalformedRequest reports a body that could not be parsed as JSON.
func MalformedRequest(detail string) *Error {
	return &Error{Status: http.StatusBadRequest, Detail: detail}
}

// Validation reports schema constraint violations with per-field detail.
func Validation(fields []FieldError) *Error {
	return &Error{Status: http.StatusBadRequest, Detail: fields}
}

func Unauthorized(detail string) *Error {
	return &Error{Status: http.StatusUnauthorized, Detail: detail}
}

func NotFound(detail string) *Error {
	return &Error{Status: http.StatusNotFound, Detail: detail}
}

func Conflict(detail string) *Error {
	return &Error{Status: http.StatusConflict, Detail: detail}
}
