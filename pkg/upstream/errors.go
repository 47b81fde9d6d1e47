package upstream

import (
	"errors"
	"fmt"
)

// Kind classifies errors from the upstream commerce services.
type Kind string

const (
	// KindTimeout represents a request that exceeded its fixed timeout.
	KindTimeout Kind = "timeout"

	// KindHTTP represents a non-2xx upstream HTTP response or a transport failure.
	KindHTTP Kind = "http"

	// KindShape represents a response missing the fields we expect.
	KindShape Kind = "shape"

	// KindNotFound represents a record the upstream does not know.
	KindNotFound Kind = "not_found"

	// KindValidation represents malformed caller input, caught before any upstream call.
	KindValidation Kind = "validation"

	// KindOverflow represents a pagination run that exceeded the page ceiling.
	KindOverflow Kind = "overflow"
)

// Error is the error type surfaced by all upstream-facing components.
type Error struct {
	Kind       Kind
	Service    string
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s error: %s: %v", e.Service, e.Kind, e.Message, e.Err)
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s error (status %d): %s", e.Service, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s error: %s", e.Service, e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Timeout builds a KindTimeout error.
func Timeout(service string, err error) *Error {
	return &Error{Kind: KindTimeout, Service: service, Message: "request timed out", Err: err}
}

// HTTPError builds a KindHTTP error from an upstream status code.
func HTTPError(service string, status int, message string) *Error {
	return &Error{Kind: KindHTTP, Service: service, StatusCode: status, Message: message}
}

// Transport builds a KindHTTP error for a failure before any status code arrived.
func Transport(service string, err error) *Error {
	return &Error{Kind: KindHTTP, Service: service, Message: "transport failure", Err: err}
}

// ShapeError builds a KindShape error for a response missing expected fields.
func ShapeError(service, message string, err error) *Error {
	return &Error{Kind: KindShape, Service: service, Message: message, Err: err}
}

// NotFound builds a KindNotFound error.
func NotFound(service, message string) *Error {
	return &Error{Kind: KindNotFound, Service: service, Message: message}
}

// Validation builds a KindValidation error for malformed caller input.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Service: "caller", Message: message}
}

// Overflow builds a KindOverflow error for a pagination run past the page ceiling.
func Overflow(service, message string) *Error {
	return &Error{Kind: KindOverflow, Service: service, Message: message}
}

// KindOf returns the Kind of err, or the empty Kind for foreign errors.
func KindOf(err error) Kind {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Kind
	}
	return ""
}

// IsNotFound reports whether err is a KindNotFound upstream error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation reports whether err is a KindValidation upstream error.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
