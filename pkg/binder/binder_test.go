package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authpost/pkg/binder"
)

type request struct {
	Email    string `json:"email" query:"email"`
	Password string `json:"password"`
	Page     int    `query:"page"`
	Active   *bool  `query:"active"`
	PostID   string `json:"-" path:"postId"`
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()
	bind := binder.JSON()

	t.Run("decodes body", func(t *testing.T) {
		t.Parallel()
		var req request
		require.NoError(t, bind(jsonRequest(`{"email":"a@b.com","password":"x"}`), &req))
		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "x", req.Password)
	})

	t.Run("charset parameter is accepted", func(t *testing.T) {
		t.Parallel()
		r := jsonRequest(`{"email":"a@b.com"}`)
		r.Header.Set("Content-Type", "application/json; charset=utf-8")
		var req request
		assert.NoError(t, bind(r, &req))
	})

	t.Run("empty body is skipped", func(t *testing.T) {
		t.Parallel()
		req := request{Email: "kept"}
		require.NoError(t, bind(httptest.NewRequest(http.MethodPost, "/", nil), &req))
		assert.Equal(t, "kept", req.Email)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		t.Parallel()
		var req request
		err := bind(jsonRequest(`{"email":"a@b.com","admin":true}`), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseJSON)
		assert.True(t, binder.IsBindingError(err))
	})

	t.Run("rejects trailing data", func(t *testing.T) {
		t.Parallel()
		var req request
		assert.ErrorIs(t, bind(jsonRequest(`{"email":"a"}{"email":"b"}`), &req), binder.ErrFailedToParseJSON)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		var req request
		assert.ErrorIs(t, bind(jsonRequest(`{"email":`), &req), binder.ErrFailedToParseJSON)
	})

	t.Run("rejects other media types", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("email=a"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var req request
		assert.ErrorIs(t, bind(r, &req), binder.ErrUnsupportedMediaType)
	})

	t.Run("rejects oversized body", func(t *testing.T) {
		t.Parallel()
		body := `{"email":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`
		var req request
		assert.ErrorIs(t, bind(jsonRequest(body), &req), binder.ErrFailedToParseJSON)
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()
	bind := binder.Query()

	t.Run("binds tagged fields only", func(t *testing.T) {
		t.Parallel()
		var req request
		r := httptest.NewRequest(http.MethodGet, "/?email=a@b.com&password=leak&page=2&active=true", nil)
		require.NoError(t, bind(r, &req))
		assert.Equal(t, "a@b.com", req.Email)
		assert.Empty(t, req.Password)
		assert.Equal(t, 2, req.Page)
		require.NotNil(t, req.Active)
		assert.True(t, *req.Active)
	})

	t.Run("absent parameters keep values", func(t *testing.T) {
		t.Parallel()
		req := request{Email: "body@b.com"}
		require.NoError(t, bind(httptest.NewRequest(http.MethodGet, "/?page=1", nil), &req))
		assert.Equal(t, "body@b.com", req.Email)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		var req request
		err := bind(httptest.NewRequest(http.MethodGet, "/?page=two", nil), &req)
		assert.ErrorIs(t, err, binder.ErrFailedToParseQuery)
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()
		var s string
		assert.ErrorIs(t, bind(httptest.NewRequest(http.MethodGet, "/", nil), &s), binder.ErrInvalidTarget)
	})
}

func TestPath(t *testing.T) {
	t.Parallel()

	params := map[string]string{"postId": "64b7f0c2e1a2b3c4d5e6f708"}
	bind := binder.Path(func(_ *http.Request, name string) string { return params[name] })

	var req request
	require.NoError(t, bind(httptest.NewRequest(http.MethodGet, "/", nil), &req))
	assert.Equal(t, "64b7f0c2e1a2b3c4d5e6f708", req.PostID)
}
