package jwt

import "errors"

var (
	// ErrMissingSecret is returned by New when no signing secret is configured.
	ErrMissingSecret = errors.New("jwt: missing signing secret")
	// ErrInvalidSignature covers every token that cannot be trusted:
	// bad signature, malformed input, unexpected algorithm or claims shape.
	ErrInvalidSignature = errors.New("jwt: invalid signature")
	ErrExpired          = errors.New("jwt: token is expired")
	ErrMissingToken     = errors.New("jwt: missing token")
)
