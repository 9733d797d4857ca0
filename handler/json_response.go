package handler

import (
	"encoding/json"
	"net/http"
)

// Envelope is the body of every JSON response. Data is always present and
// is an empty object when there is nothing to return.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	RequestID string `json:"requestId,omitempty"`
}

func emptyData() any { return struct{}{} }

type jsonResponse struct {
	status int
	body   Envelope
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, j.status, j.body)
}

func writeJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

// WithStatus sets the HTTP status code (default 200).
func WithStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

// WithMessage sets the envelope message.
func WithMessage(msg string) JSONOption {
	return func(r *jsonResponse) { r.body.Message = msg }
}

// JSON renders a successful envelope carrying data.
func JSON(data any, opts ...JSONOption) Response {
	if data == nil {
		data = emptyData()
	}
	r := &jsonResponse{
		status: http.StatusOK,
		body:   Envelope{Success: true, Message: "Success", Data: data},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Created renders a 201 envelope.
func Created(data any, msg string) Response {
	return JSON(data, WithStatus(http.StatusCreated), WithMessage(msg))
}

// errorResponse defers rendering to the ErrorHandler configured in Wrap.
type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error returns a Response that makes Wrap pass err to its ErrorHandler.
func Error(err error) Response {
	return errorResponse{err: err}
}
