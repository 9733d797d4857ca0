package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authpost/handler"
	"github.com/dmitrymomot/authpost/pkg/binder"
	"github.com/dmitrymomot/authpost/pkg/logger"
	"github.com/dmitrymomot/authpost/pkg/requestid"
)

type greetRequest struct {
	Name  string `json:"name" validate:"required"`
	Shout bool   `json:"-" query:"shout"`
}

type greeting struct {
	Text string `json:"text"`
}

func decode(t *testing.T, body *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body.Bytes(), &out))
	return out
}

func greet(_ handler.Context, req greetRequest) handler.Response {
	text := "hello " + req.Name
	if req.Shout {
		text = strings.ToUpper(text)
	}
	return handler.JSON(greeting{Text: text}, handler.WithMessage("Greeted"))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(greet,
		handler.WithBinders[handler.Context, greetRequest](binder.Query(), binder.JSON()),
		handler.WithValidation[handler.Context, greetRequest](),
	)

	t.Run("binds validates and renders envelope", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/?shout=true", strings.NewReader(`{"name":"ann"}`))
		r.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, r)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		body := decode(t, rec.Body)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Greeted", body["message"])
		assert.Equal(t, map[string]any{"text": "HELLO ANN"}, body["data"])
		assert.NotContains(t, body, "requestId")
	})

	t.Run("validation failure is 400", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))
		rec := httptest.NewRecorder()
		h(rec, r)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		body := decode(t, rec.Body)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, "name: is required", body["message"])
		assert.NotEmpty(t, body["requestId"])
	})

	t.Run("binding failure is 400", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ann","role":"admin"}`))
		rec := httptest.NewRecorder()
		h(rec, r)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestWrapErrorResponses(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf))
	errHandler := handler.NewErrorHandler(log, handler.WithClassifier(func(err error) (handler.ErrorInfo, bool) {
		if errors.Is(err, errTeapot) {
			return handler.ErrorInfo{StatusCode: http.StatusTeapot, Message: "short and stout"}, true
		}
		return handler.ErrorInfo{}, false
	}))

	fail := func(err error) http.Handler {
		return requestid.Middleware(handler.Wrap(func(handler.Context, struct{}) handler.Response {
			return handler.Error(err)
		}, handler.WithErrorHandler[handler.Context, struct{}](errHandler)))
	}

	t.Run("classified error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		fail(errTeapot).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
		body := decode(t, rec.Body)
		assert.Equal(t, "short and stout", body["message"])
		assert.Equal(t, map[string]any{}, body["data"], "error envelopes carry an empty data object")
	})

	t.Run("http error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		fail(handler.NewHTTPError(http.StatusConflict, "taken")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "taken", decode(t, rec.Body)["message"])
	})

	t.Run("unknown error hides details and carries request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(requestid.Header, "req-500")
		rec := httptest.NewRecorder()
		fail(errors.New("mongo: connection reset")).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(t, rec.Body)
		assert.Equal(t, "Something went wrong! req-500", body["message"])
		assert.Equal(t, "req-500", body["requestId"])
		assert.NotContains(t, rec.Body.String(), "connection reset")
		assert.Contains(t, buf.String(), "connection reset")
		assert.Contains(t, buf.String(), `"level":"ERROR"`)
	})

	t.Run("nil response", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil })
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

var errTeapot = errors.New("teapot")

func TestDecorators(t *testing.T) {
	t.Parallel()

	var order []string
	trace := func(name string) handler.Decorator[handler.Context, struct{}] {
		return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Wrap(func(handler.Context, struct{}) handler.Response {
		order = append(order, "handler")
		return handler.Created(nil, "done")
	}, handler.WithDecorators(trace("outer"), trace("inner")))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	assert.JSONEq(t, `{"success":true,"message":"done","data":{}}`, rec.Body.String())
}

func TestResponder(t *testing.T) {
	t.Parallel()

	respond := handler.Responder(handler.NewErrorHandler(nil))
	rec := httptest.NewRecorder()
	respond(rec, httptest.NewRequest(http.MethodGet, "/", nil), handler.NewHTTPError(http.StatusUnauthorized, "Unauthorised access"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := decode(t, rec.Body)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Unauthorised access", body["message"])
	assert.Contains(t, body, "data")
	assert.NotEmpty(t, body["requestId"], "request id is generated when middleware did not run")
}
