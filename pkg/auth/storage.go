package auth

import "context"

// Storage persists users. Implementations return ErrNotFound when no user
// matches, ErrDuplicateEmail on a unique email violation and wrap transport
// failures with ErrStoreUnavailable.
type Storage interface {
	// CreateUser inserts u and assigns u.ID.
	CreateUser(ctx context.Context, u *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// GetUserByEmailAndResetToken matches both fields in a single lookup.
	// An empty resetToken never matches.
	GetUserByEmailAndResetToken(ctx context.Context, email, resetToken string) (*User, error)
	// UpdateProfile writes the non-empty fields of in and returns the
	// updated user. No other field is touched.
	UpdateProfile(ctx context.Context, id string, in ProfileInput) (*User, error)
	// SetResetToken stores resetToken on the user, replacing any earlier one.
	SetResetToken(ctx context.Context, id, resetToken string) error
	// ConsumeResetToken atomically replaces the password hash and clears the
	// reset token of the user matching both email and resetToken. It returns
	// the updated user, or ErrNotFound when the pair no longer matches.
	ConsumeResetToken(ctx context.Context, email, resetToken, passwordHash string) (*User, error)
}
