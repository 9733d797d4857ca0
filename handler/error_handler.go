package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authpost/pkg/binder"
	"github.com/dmitrymomot/authpost/pkg/logger"
	"github.com/dmitrymomot/authpost/pkg/requestid"
	"github.com/dmitrymomot/authpost/pkg/validate"
)

// ErrorInfo is the status and client message chosen for an error.
type ErrorInfo struct {
	StatusCode int
	Message    string
}

// Classifier maps domain errors to an ErrorInfo. It returns false for errors
// it does not recognise.
type Classifier func(err error) (ErrorInfo, bool)

// ErrorHandlerOption configures NewErrorHandler.
type ErrorHandlerOption func(*errorHandlerConfig)

type errorHandlerConfig struct {
	classifiers []Classifier
}

// WithClassifier adds a domain classifier. Classifiers run in registration
// order, before the built-in HTTPError, validation and binding rules.
func WithClassifier(c Classifier) ErrorHandlerOption {
	return func(cfg *errorHandlerConfig) {
		if c != nil {
			cfg.classifiers = append(cfg.classifiers, c)
		}
	}
}

// NewErrorHandler renders errors as JSON envelopes with success=false and the
// request id. Server errors never expose their text: the client receives
// "Something went wrong! <request id>" and the details go to the log.
func NewErrorHandler(log *slog.Logger, opts ...ErrorHandlerOption) ErrorHandler[Context] {
	if log == nil {
		log = logger.Discard()
	}
	cfg := &errorHandlerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		reqID := requestid.FromContext(r.Context())
		if reqID == "" {
			reqID = requestid.New()
		}

		info := classify(err, cfg.classifiers)
		if info.StatusCode >= http.StatusInternalServerError {
			info.Message = "Something went wrong! " + reqID
		}

		level := slog.LevelWarn
		if info.StatusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.LogAttrs(r.Context(), level, "request error",
			logger.RequestID(reqID),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		if werr := writeJSON(ctx.ResponseWriter(), info.StatusCode, Envelope{
			Success:   false,
			Message:   info.Message,
			Data:      emptyData(),
			RequestID: reqID,
		}); werr != nil {
			log.ErrorContext(r.Context(), "failed to write error response", logger.Error(werr))
		}
	}
}

// Responder adapts an ErrorHandler for plain net/http middleware.
func Responder(h ErrorHandler[Context]) func(w http.ResponseWriter, r *http.Request, err error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		h(NewContext(w, r), err)
	}
}

func classify(err error, classifiers []Classifier) ErrorInfo {
	for _, c := range classifiers {
		if info, ok := c(err); ok {
			return info
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return ErrorInfo{StatusCode: httpErr.Code, Message: httpErr.Message}
	}

	var verr validate.ValidationError
	if errors.As(err, &verr) {
		return ErrorInfo{StatusCode: http.StatusBadRequest, Message: verr.Error()}
	}

	if binder.IsBindingError(err) {
		return ErrorInfo{StatusCode: http.StatusBadRequest, Message: "Invalid request body"}
	}

	return ErrorInfo{StatusCode: http.StatusInternalServerError}
}
