package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/dmitrymomot/authpost/pkg/jwt"
	"github.com/dmitrymomot/authpost/pkg/logger"
)

// resetTokenBytes is the entropy of the stored reset token before hex encoding.
const resetTokenBytes = 20

// TokenCodec signs and verifies session and reset tokens.
type TokenCodec interface {
	SignSession(claims jwt.SessionClaims) (string, error)
	SignReset(claims jwt.ResetClaims) (string, error)
	Verify(token string) (jwt.Claims, error)
}

// ResetHook receives every issued reset token. It runs in its own goroutine
// with a 10 second timeout; failures are logged and never reach the caller.
type ResetHook func(ctx context.Context, n ResetNotification) error

// Service implements signup, login, profile access and the password reset
// handshake on top of a Storage, a Hasher and a TokenCodec.
type Service struct {
	storage Storage
	codec   TokenCodec
	hasher  Hasher
	logger  *slog.Logger
	now     func() time.Time
	onReset ResetHook

	dummyOnce sync.Once
	dummyHash string
}

type Option func(*Service)

func WithHasher(h Hasher) Option {
	return func(s *Service) {
		if h != nil {
			s.hasher = h
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithResetHook registers the delivery of reset tokens, usually an email sender.
func WithResetHook(fn ResetHook) Option {
	return func(s *Service) { s.onReset = fn }
}

// NewService creates the auth flow controller. Passwords are hashed with
// bcrypt at the default cost unless WithHasher is given.
func NewService(storage Storage, codec TokenCodec, opts ...Option) *Service {
	s := &Service{
		storage: storage,
		codec:   codec,
		hasher:  NewBcryptHasher(0),
		logger:  logger.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("auth"))
	return s
}

// Signup creates a user and returns a session token for it.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, newError(ErrMissingField, "Please pass username and password.")
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:        email,
		PasswordHash: hash,
		Name:         in.Name,
		Address:      in.Address,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, &Error{Kind: ErrDuplicateEmail, Message: "Email already exists", Cause: err}
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user signed up", logger.UserID(user.ID), logger.Event("signup"))
	return &AuthResult{Token: token, ID: user.ID}, nil
}

// Login checks the credentials and returns a fresh session token.
// Unknown email and wrong password fail identically with ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, newError(ErrMissingField, "Please send email and password.")
	}

	invalid := newError(ErrInvalidCredentials, "Email or Password not matched !!")

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("get user by email: %w", err)
		}
		// Keep response time close to the wrong-password path.
		_ = s.hasher.Compare(s.dummy(), password)
		s.logger.DebugContext(ctx, "login failed", logger.Event("login"))
		return nil, invalid
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.DebugContext(ctx, "login failed", logger.UserID(user.ID), logger.Event("login"))
		return nil, invalid
	}

	token, err := s.issueSession(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ID: user.ID}, nil
}

// GetProfile returns the stored profile of the authenticated identity.
func (s *Service) GetProfile(ctx context.Context, identity *User) (*Profile, error) {
	user, err := s.reload(ctx, identity)
	if err != nil {
		return nil, err
	}
	return &Profile{Email: user.Email, Name: user.Name, Address: user.Address}, nil
}

// UpdateProfile overwrites name and address with the non-empty input values.
func (s *Service) UpdateProfile(ctx context.Context, identity *User, in ProfileInput) (*Profile, error) {
	notFound := newError(ErrNotFound, "No User Found!")
	if identity == nil || identity.ID == "" {
		return nil, notFound
	}

	user, err := s.storage.UpdateProfile(ctx, identity.ID, in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return &Profile{Email: user.Email, Name: user.Name, Address: user.Address}, nil
}

func (s *Service) reload(ctx context.Context, identity *User) (*User, error) {
	notFound := newError(ErrNotFound, "No User Found!")
	if identity == nil || identity.ID == "" {
		return nil, notFound
	}
	user, err := s.storage.GetUserByID(ctx, identity.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// ForgotPassword stores a new random reset token on the user, replacing any
// earlier one, and returns it wrapped in a signed 15 minute reset token.
func (s *Service) ForgotPassword(ctx context.Context, email string) (*ResetRequest, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, newError(ErrMissingField, "Please enter the email address")
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrNotFound, "No user found")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	resetToken, err := randomHex(resetTokenBytes)
	if err != nil {
		return nil, err
	}
	if err := s.storage.SetResetToken(ctx, user.ID, resetToken); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrNotFound, "No user found")
		}
		return nil, fmt.Errorf("save reset token: %w", err)
	}

	token, err := s.codec.SignReset(jwt.ResetClaims{Name: user.Name, Email: user.Email, ResetToken: resetToken})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "password reset requested", logger.UserID(user.ID), logger.Event("forgot_password"))
	s.notifyReset(ResetNotification{
		Name:      user.Name,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: s.now().Add(jwt.ResetTTL),
	})

	return &ResetRequest{Success: true, Token: token}, nil
}

// VerifyToken checks a reset token against the stored reset state without
// consuming it.
func (s *Service) VerifyToken(ctx context.Context, token string) (*VerifiedToken, error) {
	if token == "" {
		return nil, newError(ErrMissingField, "Please enter the token")
	}
	rc, err := s.resetClaims(token)
	if err != nil {
		return nil, err
	}
	user, err := s.resetTarget(ctx, rc, "No User Found")
	if err != nil {
		return nil, err
	}
	return &VerifiedToken{Name: user.Name, Email: user.Email, Token: token}, nil
}

// ChangePassword consumes a reset token: the new password is stored and the
// reset token cleared in one storage call, so the same token cannot be used
// again even by a concurrent request.
func (s *Service) ChangePassword(ctx context.Context, token, password string) (*ChangeResult, error) {
	if token == "" {
		return nil, newError(ErrMissingField, "Please enter the token")
	}
	if password == "" {
		return nil, newError(ErrMissingField, "Please enter the new password")
	}

	rc, err := s.resetClaims(token)
	if err != nil {
		return nil, err
	}
	if _, err := s.resetTarget(ctx, rc, "User Not Found"); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user, err := s.storage.ConsumeResetToken(ctx, rc.Email, rc.ResetToken, hash)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrNotFound, "User Not Found")
		}
		return nil, fmt.Errorf("save password: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed", logger.UserID(user.ID), logger.Event("change_password"))
	return &ChangeResult{Status: true}, nil
}

// resetClaims verifies token and requires it to be a reset token.
func (s *Service) resetClaims(token string) (jwt.ResetClaims, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return jwt.ResetClaims{}, tokenError(err)
	}
	rc, ok := claims.(jwt.ResetClaims)
	if !ok {
		return jwt.ResetClaims{}, newError(ErrInvalidSignature, "Invalid token")
	}
	return rc, nil
}

// resetTarget loads the user whose email and stored reset token both match rc.
func (s *Service) resetTarget(ctx context.Context, rc jwt.ResetClaims, notFoundMsg string) (*User, error) {
	user, err := s.storage.GetUserByEmailAndResetToken(ctx, rc.Email, rc.ResetToken)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, newError(ErrNotFound, notFoundMsg)
		}
		return nil, fmt.Errorf("get user by reset token: %w", err)
	}
	return user, nil
}

// Authenticate resolves a session token to the stored user it names.
// Any token problem or a missing user yields ErrUnauthorized.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	claims, err := s.codec.Verify(token)
	if err != nil {
		return nil, &Error{Kind: ErrUnauthorized, Message: unauthorizedMessage, Cause: tokenError(err)}
	}
	sc, ok := claims.(jwt.SessionClaims)
	if !ok {
		return nil, &Error{Kind: ErrUnauthorized, Message: unauthorizedMessage, Cause: ErrInvalidSignature}
	}

	user, err := s.storage.GetUserByID(ctx, sc.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &Error{Kind: ErrUnauthorized, Message: unauthorizedMessage, Cause: err}
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user.Sanitized(), nil
}

func (s *Service) issueSession(u *User) (string, error) {
	return s.codec.SignSession(jwt.SessionClaims{ID: u.ID, Email: u.Email, Name: u.Name})
}

func (s *Service) notifyReset(n ResetNotification) {
	if s.onReset == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("reset hook panicked", slog.Any("panic", r), logger.Event("forgot_password"))
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.onReset(ctx, n); err != nil {
			s.logger.Error("reset hook failed", logger.Error(err), logger.Event("forgot_password"))
		}
	}()
}

// dummy returns a valid hash used to burn comparison time for unknown emails.
func (s *Service) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("authpost-timing-equaliser")
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
