package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authpost/pkg/auth"
	"github.com/dmitrymomot/authpost/pkg/jwt"
)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

type fixture struct {
	svc   *auth.Service
	store *auth.MemoryStorage
	codec *jwt.Codec
	clock *testClock
}

func newFixture(t *testing.T, opts ...auth.Option) *fixture {
	t.Helper()

	clk := &testClock{t: time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)}
	codec, err := jwt.New(jwt.Config{Secret: "auth-test-secret", TTL: time.Hour}, jwt.WithClock(clk.now))
	require.NoError(t, err)

	store := auth.NewMemoryStorage()
	base := []auth.Option{
		auth.WithHasher(auth.NewBcryptHasher(bcrypt.MinCost)),
		auth.WithClock(clk.now),
	}
	svc := auth.NewService(store, codec, append(base, opts...)...)
	return &fixture{svc: svc, store: store, codec: codec, clock: clk}
}
