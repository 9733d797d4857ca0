package post_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authpost/modules/post"
	"github.com/dmitrymomot/authpost/pkg/auth"
	"github.com/dmitrymomot/authpost/pkg/jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	h     http.Handler
	token string
	uid   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	codec, err := jwt.New(jwt.Config{Secret: "post-test-secret", TTL: time.Hour})
	require.NoError(t, err)
	accounts := auth.NewService(auth.NewMemoryStorage(), codec, auth.WithHasher(auth.NewBcryptHasher(bcrypt.MinCost)))
	res, err := accounts.Signup(t.Context(), auth.SignupInput{Email: "author@example.com", Password: "Secr3t!pass"})
	require.NoError(t, err)

	svc := post.NewService(post.NewMemoryStorage())
	return &testServer{h: post.Router(svc, accounts), token: res.Token, uid: res.ID}
}

func (s *testServer) do(t *testing.T, method, target, body string, authed bool) (int, envelope) {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if authed {
		r.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, r)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestPostLifecycle(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/create", `{"title":"Hello","body":"World"}`, true)
	require.Equal(t, http.StatusCreated, code)
	var created post.Post
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, s.uid, created.AuthoredBy)

	code, env = s.do(t, http.MethodGet, "/posts/"+created.ID, "", false)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"id":"`+created.ID+`","title":"Hello","body":"World"}`, string(env.Data))

	code, env = s.do(t, http.MethodPut, "/update/"+created.ID, `{"title":"Hello again"}`, true)
	require.Equal(t, http.StatusOK, code)
	var updated post.Post
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, "World", updated.Body)

	code, env = s.do(t, http.MethodGet, "/posts", "", false)
	require.Equal(t, http.StatusOK, code)
	var list post.List
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list.PostList, 1)

	code, _ = s.do(t, http.MethodDelete, "/delete/"+created.ID, "", true)
	require.Equal(t, http.StatusOK, code)

	code, env = s.do(t, http.MethodGet, "/posts/"+created.ID, "", false)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Post not found", env.Message)
}

func TestPostMutationsRequireSession(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	for _, tc := range []struct{ method, target, body string }{
		{http.MethodPost, "/create", `{"title":"t","body":"b"}`},
		{http.MethodPut, "/update/abc", `{"title":"t"}`},
		{http.MethodDelete, "/delete/abc", ""},
	} {
		code, env := s.do(t, tc.method, tc.target, tc.body, false)
		assert.Equal(t, http.StatusUnauthorized, code, tc.target)
		assert.Equal(t, "Unauthorised access", env.Message)
	}
}

func TestPostValidation(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)

	code, env := s.do(t, http.MethodPost, "/create", `{"title":"only title"}`, true)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Please pass body and title.", env.Message)

	code, _ = s.do(t, http.MethodPost, "/create", `{"title":"Dup","body":"1"}`, true)
	require.Equal(t, http.StatusCreated, code)
	code, env = s.do(t, http.MethodPost, "/create", `{"title":"Dup","body":"2"}`, true)
	assert.Equal(t, http.StatusConflict, code)
	assert.False(t, env.Success)

	code, _ = s.do(t, http.MethodPost, "/create", `{"title":"x","body":"y","authoredBy":"someone"}`, true)
	assert.Equal(t, http.StatusBadRequest, code)
}
