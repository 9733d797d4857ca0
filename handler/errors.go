package handler

import (
	"errors"
	"fmt"
)

var ErrNilResponse = errors.New("handler returned nil response")

// HTTPError is an error with an explicit status code and client message.
type HTTPError struct {
	Code    int
	Message string
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) HTTPError {
	return HTTPError{Code: code, Message: message}
}
