// Package domainerrors defines the coded error type every public repository
// and service operation returns across the boundary. Stores return sentinel
// errors; services translate them into these codes so transports and callers
// can branch on the kind of failure without string matching.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure.
type Code string

const (
	// CodeNotFound: a referenced id does not exist.
	CodeNotFound Code = "not_found"
	// CodeValidation: an entity failed validation before persisting.
	CodeValidation Code = "validation"
	// CodeStoreFailure: the underlying document store call failed.
	CodeStoreFailure Code = "store_failure"
	// CodePartialFailure: a multi-document operation succeeded for some
	// targets but not all (for example the standalone write stuck but the
	// embedded-copy write failed, or a batch completed partially).
	CodePartialFailure Code = "partial_failure"
	// CodeBadRequest: malformed caller input at the transport boundary.
	CodeBadRequest Code = "bad_request"
	// CodeInternal: unexpected failure that fits no other bucket.
	CodeInternal Code = "internal"
)

// Error carries a code, an optional offending field, and a human message.
type Error struct {
	Code    Code
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validation builds a validation error pointing at a field.
func Validation(field, message string) *Error {
	return &Error{Code: CodeValidation, Field: field, Message: message}
}

// Is reports whether err (or anything it wraps) carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps a code to the HTTP status the transport layer responds
// with.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation, CodeBadRequest:
		return http.StatusBadRequest
	case CodeStoreFailure, CodePartialFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
