package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ResetTTL is the fixed lifetime of password reset tokens.
const ResetTTL = 15 * time.Minute

// Config holds the signing secret and the session token lifetime.
type Config struct {
	Secret string        `env:"SECRET,required"`
	TTL    time.Duration `env:"TIME_TO_EXPIRE" envDefault:"15m"`
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// WithIssuer stamps tokens with iss and requires it on verification.
func WithIssuer(issuer string) Option {
	return func(c *Codec) { c.issuer = issuer }
}

// Codec signs and verifies HS256 tokens with a single shared secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
	parser *jwt.Parser
}

// New creates a Codec. An empty secret is a configuration error.
// A non-positive TTL falls back to 15 minutes.
func New(cfg Config, opts ...Option) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	c := &Codec{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    time.Now,
	}
	if c.ttl <= 0 {
		c.ttl = 15 * time.Minute
	}
	for _, opt := range opts {
		opt(c)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	}
	if c.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(c.issuer))
	}
	c.parser = jwt.NewParser(parserOpts...)
	return c, nil
}

// wireClaims is the JSON shape of both token kinds.
type wireClaims struct {
	Kind       Kind   `json:"kind"`
	ID         string `json:"id,omitempty"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	ResetToken string `json:"resetToken,omitempty"`
	jwt.RegisteredClaims
}

// SignSession issues a session token that expires after the configured TTL.
func (c *Codec) SignSession(claims SessionClaims) (string, error) {
	return c.sign(wireClaims{
		Kind:  KindSession,
		ID:    claims.ID,
		Email: claims.Email,
		Name:  claims.Name,
	}, c.ttl)
}

// SignReset issues a reset token that expires after ResetTTL regardless of
// the session TTL.
func (c *Codec) SignReset(claims ResetClaims) (string, error) {
	return c.sign(wireClaims{
		Kind:       KindReset,
		Email:      claims.Email,
		Name:       claims.Name,
		ResetToken: claims.ResetToken,
	}, ResetTTL)
}

func (c *Codec) sign(wc wireClaims, ttl time.Duration) (string, error) {
	now := c.now()
	wc.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    c.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("jwt: sign %s token: %w", wc.Kind, err)
	}
	return token, nil
}

// Verify checks signature and expiry and returns the decoded claims.
// It returns ErrExpired for a correctly signed token past its expiry and
// ErrInvalidSignature for anything else that fails.
func (c *Codec) Verify(token string) (Claims, error) {
	if token == "" {
		return nil, ErrInvalidSignature
	}

	var wc wireClaims
	_, err := c.parser.ParseWithClaims(token, &wc, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, errors.Join(ErrInvalidSignature, err)
	}

	var iat, exp time.Time
	if wc.IssuedAt != nil {
		iat = wc.IssuedAt.Time
	}
	if wc.ExpiresAt != nil {
		exp = wc.ExpiresAt.Time
	}

	switch wc.Kind {
	case KindSession:
		if wc.ID == "" {
			return nil, ErrInvalidSignature
		}
		return SessionClaims{ID: wc.ID, Email: wc.Email, Name: wc.Name, issuedAt: iat, expiresAt: exp}, nil
	case KindReset:
		if wc.Email == "" || wc.ResetToken == "" {
			return nil, ErrInvalidSignature
		}
		return ResetClaims{Name: wc.Name, Email: wc.Email, ResetToken: wc.ResetToken, issuedAt: iat, expiresAt: exp}, nil
	default:
		return nil, ErrInvalidSignature
	}
}
