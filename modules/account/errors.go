package account

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/authpost/handler"
	"github.com/dmitrymomot/authpost/pkg/auth"
)

// ErrorClassifier maps auth failures to HTTP statuses. Missing fields and
// over-long passwords are 400, credential and token problems 401, unknown or
// duplicate accounts 403.
func ErrorClassifier(err error) (handler.ErrorInfo, bool) {
	status := 0
	fallback := ""
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		status, fallback = http.StatusUnauthorized, "Unauthorised access"
	case errors.Is(err, auth.ErrStoreUnavailable):
		return handler.ErrorInfo{StatusCode: http.StatusInternalServerError}, true
	case errors.Is(err, auth.ErrMissingField):
		status, fallback = http.StatusBadRequest, "Missing required field"
	case errors.Is(err, auth.ErrPasswordTooLong):
		status, fallback = http.StatusBadRequest, "Password must be at most 72 bytes"
	case errors.Is(err, auth.ErrExpired):
		status, fallback = http.StatusUnauthorized, "Token expired"
	case errors.Is(err, auth.ErrInvalidSignature):
		status, fallback = http.StatusUnauthorized, "Invalid token"
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, fallback = http.StatusUnauthorized, "Email or Password not matched !!"
	case errors.Is(err, auth.ErrDuplicateEmail):
		status, fallback = http.StatusForbidden, "Email already exists"
	case errors.Is(err, auth.ErrNotFound):
		status, fallback = http.StatusForbidden, "No User Found"
	default:
		return handler.ErrorInfo{}, false
	}

	msg, ok := auth.Message(err)
	if !ok {
		msg = fallback
	}
	return handler.ErrorInfo{StatusCode: status, Message: msg}, true
}
