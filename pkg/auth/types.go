package auth

import "time"

// User is a stored account. The password hash and the reset token never
// leave the process in JSON form.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	ResetToken   string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Sanitized returns a copy of u without secrets.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.PasswordHash = ""
	c.ResetToken = ""
	return &c
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
	Address  string
}

// AuthResult is returned by Signup and Login.
type AuthResult struct {
	Token string `json:"token"`
	ID    string `json:"id"`
}

type Profile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ProfileInput holds profile changes. Empty fields keep the stored value.
type ProfileInput struct {
	Name    string
	Address string
}

type ResetRequest struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// ResetNotification is handed to the reset hook so the signed token can be
// delivered out of band.
type ResetNotification struct {
	Name      string
	Email     string
	Token     string
	ExpiresAt time.Time
}

type VerifiedToken struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type ChangeResult struct {
	Status bool `json:"status"`
}
