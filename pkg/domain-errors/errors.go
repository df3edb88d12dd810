// Package domainerrors defines the code-based error taxonomy used across
// services and handlers. Stores return sentinel errors for infrastructure
// facts; services translate them into these domain errors, and the HTTP layer
// maps codes to status lines without inspecting error strings.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping and logging.
type Code string

const (
	// CodeValidation marks payloads that violate a field rule.
	CodeValidation Code = "validation_error"
	// CodeBadRequest marks malformed requests (bad JSON, bad path parameter).
	CodeBadRequest Code = "bad_request"
	// CodeNotFound marks missing entities and dangling references.
	CodeNotFound Code = "not_found"
	// CodeConflict marks uniqueness and referential-integrity violations.
	CodeConflict Code = "conflict"
	// CodeInternal marks storage or programming faults. Detail is suppressed
	// at the HTTP boundary in production configuration.
	CodeInternal Code = "internal_error"
)

// Error is a domain error with a classification code and an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New builds a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/As chains.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
