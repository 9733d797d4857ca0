package jwt

import "time"

// Kind discriminates the payload carried by a token.
type Kind string

const (
	KindSession Kind = "session"
	KindReset   Kind = "reset"
)

// Claims is the verified payload of a token: either SessionClaims or ResetClaims.
type Claims interface {
	Kind() Kind
	IssuedAt() time.Time
	ExpiresAt() time.Time
	claims()
}

// SessionClaims identify a signed-in user.
type SessionClaims struct {
	ID    string
	Email string
	Name  string

	issuedAt  time.Time
	expiresAt time.Time
}

func (SessionClaims) Kind() Kind             { return KindSession }
func (c SessionClaims) IssuedAt() time.Time  { return c.issuedAt }
func (c SessionClaims) ExpiresAt() time.Time { return c.expiresAt }
func (SessionClaims) claims()               {}

// ResetClaims authorise a single password change for Email while ResetToken
// still matches the value stored for that user.
type ResetClaims struct {
	Name       string
	Email      string
	ResetToken string

	issuedAt  time.Time
	expiresAt time.Time
}

func (ResetClaims) Kind() Kind             { return KindReset }
func (c ResetClaims) IssuedAt() time.Time  { return c.issuedAt }
func (c ResetClaims) ExpiresAt() time.Time { return c.expiresAt }
func (ResetClaims) claims()               {}
