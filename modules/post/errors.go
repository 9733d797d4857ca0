package post

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/authpost/handler"
	"github.com/dmitrymomot/authpost/pkg/auth"
)

var (
	ErrMissingField     = errors.New("missing required field")
	ErrNotFound         = errors.New("post not found")
	ErrDuplicateTitle   = errors.New("post title already exists")
	ErrStoreUnavailable = errors.New("post store unavailable")
)

// Error carries the client-facing message for a failure kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ErrorClassifier maps post failures to HTTP statuses. Rejections by the
// session gate are 401.
func ErrorClassifier(err error) (handler.ErrorInfo, bool) {
	var status int
	switch {
	case errors.Is(err, auth.ErrUnauthorized):
		return handler.ErrorInfo{StatusCode: http.StatusUnauthorized, Message: "Unauthorised access"}, true
	case errors.Is(err, ErrStoreUnavailable):
		return handler.ErrorInfo{StatusCode: http.StatusInternalServerError}, true
	case errors.Is(err, ErrMissingField):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrDuplicateTitle):
		status = http.StatusConflict
	default:
		return handler.ErrorInfo{}, false
	}

	msg := err.Error()
	var e *Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return handler.ErrorInfo{StatusCode: status, Message: msg}, true
}
