package jwt_test

import (
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authpost/pkg/jwt"
)

const testSecret = "test-secret-key"

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newClock() *clock {
	return &clock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func newCodec(t *testing.T, ttl time.Duration, opts ...jwt.Option) *jwt.Codec {
	t.Helper()
	c, err := jwt.New(jwt.Config{Secret: testSecret, TTL: ttl}, opts...)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := jwt.New(jwt.Config{})
	assert.ErrorIs(t, err, jwt.ErrMissingSecret)

	c, err := jwt.New(jwt.Config{Secret: "s"})
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	clk := newClock()
	codec := newCodec(t, time.Hour, jwt.WithClock(clk.now))

	token, err := codec.SignSession(jwt.SessionClaims{ID: "64b7f0c2e1a2b3c4d5e6f708", Email: "a@b.com", Name: "Ann"})
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, jwt.KindSession, claims.Kind())

	s, ok := claims.(jwt.SessionClaims)
	require.True(t, ok)
	assert.Equal(t, "64b7f0c2e1a2b3c4d5e6f708", s.ID)
	assert.Equal(t, "a@b.com", s.Email)
	assert.Equal(t, "Ann", s.Name)
	assert.True(t, clk.t.Equal(s.IssuedAt()))
	assert.True(t, clk.t.Add(time.Hour).Equal(s.ExpiresAt()))
}

func TestResetRoundTrip(t *testing.T) {
	t.Parallel()

	clk := newClock()
	codec := newCodec(t, 24*time.Hour, jwt.WithClock(clk.now))

	token, err := codec.SignReset(jwt.ResetClaims{Name: "Ann", Email: "a@b.com", ResetToken: "deadbeef"})
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	r, ok := claims.(jwt.ResetClaims)
	require.True(t, ok)
	assert.Equal(t, "Ann", r.Name)
	assert.Equal(t, "a@b.com", r.Email)
	assert.Equal(t, "deadbeef", r.ResetToken)
	assert.Equal(t, jwt.ResetTTL, r.ExpiresAt().Sub(r.IssuedAt()), "reset lifetime ignores session TTL")
}

func TestVerifyExpiry(t *testing.T) {
	t.Parallel()

	clk := newClock()
	codec := newCodec(t, 15*time.Minute, jwt.WithClock(clk.now))
	start := clk.t

	token, err := codec.SignSession(jwt.SessionClaims{ID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	clk.t = start.Add(15*time.Minute - time.Second)
	_, err = codec.Verify(token)
	assert.NoError(t, err, "valid one second before expiry")

	clk.t = start.Add(15 * time.Minute)
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrExpired)

	clk.t = start.Add(time.Hour)
	_, err = codec.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrExpired)
	assert.NotErrorIs(t, err, jwt.ErrInvalidSignature)
}

func TestVerifyRejectsUntrustedTokens(t *testing.T) {
	t.Parallel()

	codec := newCodec(t, time.Hour)
	good, err := codec.SignSession(jwt.SessionClaims{ID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	other, err := jwt.New(jwt.Config{Secret: "another-secret"})
	require.NoError(t, err)
	foreign, err := other.SignSession(jwt.SessionClaims{ID: "u1", Email: "a@b.com"})
	require.NoError(t, err)

	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, gojwt.MapClaims{
		"kind": "session", "id": "u1", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	none, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{
		"kind": "session", "id": "u1", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	unknownKind, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"kind": "admin", "id": "u1", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"kind": "session", "id": "u1",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	sessionWithoutID, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{
		"kind": "session", "email": "a@b.com", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	corrupted := good[:len(good)-2] + "xx"
	if corrupted == good {
		corrupted = good[:len(good)-2] + "yy"
	}

	cases := map[string]string{
		"empty":              "",
		"garbage":            "not.a.token",
		"corrupted":          corrupted,
		"wrong secret":       foreign,
		"other algorithm":    hs512,
		"unsigned":           none,
		"unknown kind":       unknownKind,
		"missing expiry":     noExpiry,
		"session without id": sessionWithoutID,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			claims, err := codec.Verify(token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
		})
	}
}

func TestIssuer(t *testing.T) {
	t.Parallel()

	a := newCodec(t, time.Hour, jwt.WithIssuer("authpost"))
	b := newCodec(t, time.Hour, jwt.WithIssuer("someone-else"))

	token, err := a.SignSession(jwt.SessionClaims{ID: "u1"})
	require.NoError(t, err)

	_, err = a.Verify(token)
	assert.NoError(t, err)
	_, err = b.Verify(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
}

func TestZeroTTLFallsBack(t *testing.T) {
	t.Parallel()

	clk := newClock()
	codec := newCodec(t, 0, jwt.WithClock(clk.now))
	token, err := codec.SignSession(jwt.SessionClaims{ID: "u1"})
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, claims.ExpiresAt().Sub(claims.IssuedAt()))
}
