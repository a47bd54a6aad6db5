// Package apperr carries the error kinds the API distinguishes for clients.
// Services return these; the HTTP layer maps each kind to a status code.
package apperr

import "errors"

type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is bad client input or an invalid state transition.
	KindValidation
	// KindPermissionDenied is an authorization failure on an existing resource.
	KindPermissionDenied
	// KindNotFound is a missing resource, or one the caller may not view.
	KindNotFound
	// KindUpstream is a provider rejection or failure. The message is kept
	// generic so provider internals never reach the client.
	KindUpstream
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func PermissionDenied(message string) *Error {
	return &Error{Kind: KindPermissionDenied, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Upstream(message string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindUnknown for errors outside the
// taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// MessageOf returns the client-facing message of err. Upstream errors never
// expose the wrapped cause.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
