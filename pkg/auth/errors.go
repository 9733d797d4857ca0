package auth

import (
	"errors"

	"github.com/dmitrymomot/authpost/pkg/jwt"
)

var (
	ErrMissingField       = errors.New("missing required field")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrNotFound           = errors.New("user not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrStoreUnavailable   = errors.New("credential store unavailable")

	ErrInvalidSignature = jwt.ErrInvalidSignature
	ErrExpired          = jwt.ErrExpired
)

// Error pairs a failure kind with the message shown to the client.
// errors.Is matches the kind and, when present, the underlying cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Message returns the client-facing message carried by err, if any.
func Message(err error) (string, bool) {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message, true
	}
	return "", false
}

func tokenError(err error) error {
	if errors.Is(err, jwt.ErrExpired) {
		return &Error{Kind: ErrExpired, Message: "Token expired", Cause: err}
	}
	return &Error{Kind: ErrInvalidSignature, Message: "Invalid token", Cause: err}
}
