// Package domainerrors defines the typed error family returned by services
// for domain outcomes: not found, unauthorized, conflict, validation. Stores
// return sentinel errors (pkg/platform/sentinel); services translate them into
// these coded errors, and the HTTP edge maps codes to status codes.
//
// Codes come in two flavors:
//   - generic codes (CodeNotFound, CodeValidation, ...) used for status mapping
//   - namespaced codes ("Board.CannotRemoveOwner") carried verbatim in API
//     responses so clients can branch on stable, machine-readable values
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code, optionally namespaced per entity.
type Code string

const (
	CodeValidation   Code = "validation"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeInternal     Code = "internal"
)

// Error is a domain error with a stable code and a human-readable description.
type Error struct {
	Code        Code
	Description string
	cause       error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Description, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and description.
func New(code Code, description string) *Error {
	return &Error{Code: code, Description: description}
}

// Newf creates a domain error with a formatted description.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Description: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and description to an underlying cause. The cause is
// preserved for errors.Is/As but never shown to API clients.
func Wrap(err error, code Code, description string) *Error {
	return &Error{Code: code, Description: description, cause: err}
}

// HasCode reports whether err carries the given code anywhere in its chain.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf returns the code of err, or CodeInternal if err is not a domain error.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// DescriptionOf returns the human-readable description of err, or a generic
// message for non-domain errors so internals never leak to clients.
func DescriptionOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Description
	}
	return "internal server error"
}
