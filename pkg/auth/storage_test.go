package auth_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/authpost/pkg/auth"
)

// interleavingStorage runs between once, before the first call to any of the
// listed methods, to simulate another request landing mid-operation.
type interleavingStorage struct {
	*auth.MemoryStorage
	methods map[string]bool
	between func()
	once    sync.Once
}

func (s *interleavingStorage) hook(method string) {
	if s.methods[method] {
		s.once.Do(s.between)
	}
}

func (s *interleavingStorage) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	s.hook("GetUserByID")
	return s.MemoryStorage.GetUserByID(ctx, id)
}

func (s *interleavingStorage) GetUserByEmailAndResetToken(ctx context.Context, email, resetToken string) (*auth.User, error) {
	u, err := s.MemoryStorage.GetUserByEmailAndResetToken(ctx, email, resetToken)
	s.hook("GetUserByEmailAndResetToken")
	return u, err
}

func (s *interleavingStorage) UpdateProfile(ctx context.Context, id string, in auth.ProfileInput) (*auth.User, error) {
	s.hook("UpdateProfile")
	return s.MemoryStorage.UpdateProfile(ctx, id, in)
}

func (f *fixture) serviceOver(store auth.Storage) *auth.Service {
	return auth.NewService(store, f.codec,
		auth.WithHasher(auth.NewBcryptHasher(bcrypt.MinCost)),
		auth.WithClock(f.clock.now),
	)
}

func TestPasswordChangeSurvivesConcurrentWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("profile update in the middle of a reset", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		res := signup(t, f, "a@b.com", "Abc12345!")
		req, err := f.svc.ForgotPassword(ctx, "a@b.com")
		require.NoError(t, err)

		store := &interleavingStorage{
			MemoryStorage: f.store,
			methods:       map[string]bool{"GetUserByID": true, "UpdateProfile": true},
			between: func() {
				_, err := f.svc.ChangePassword(ctx, req.Token, "New12345!")
				require.NoError(t, err)
			},
		}
		p, err := f.serviceOver(store).UpdateProfile(ctx, &auth.User{ID: res.ID}, auth.ProfileInput{Name: "Bea"})
		require.NoError(t, err)
		assert.Equal(t, "Bea", p.Name)

		_, err = f.svc.Login(ctx, "a@b.com", "New12345!")
		assert.NoError(t, err, "new password is kept")
		_, err = f.svc.Login(ctx, "a@b.com", "Abc12345!")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

		_, err = f.svc.ChangePassword(ctx, req.Token, "Again123!")
		assert.ErrorIs(t, err, auth.ErrNotFound, "consumed reset token stays consumed")
	})

	t.Run("two changes with the same reset token", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		signup(t, f, "a@b.com", "Abc12345!")
		req, err := f.svc.ForgotPassword(ctx, "a@b.com")
		require.NoError(t, err)

		store := &interleavingStorage{
			MemoryStorage: f.store,
			methods:       map[string]bool{"GetUserByEmailAndResetToken": true},
			between: func() {
				_, err := f.svc.ChangePassword(ctx, req.Token, "First123!")
				require.NoError(t, err)
			},
		}
		_, err = f.serviceOver(store).ChangePassword(ctx, req.Token, "Second12!")
		assert.ErrorIs(t, err, auth.ErrNotFound)
		assertMessage(t, err, "User Not Found")

		_, err = f.svc.Login(ctx, "a@b.com", "First123!")
		assert.NoError(t, err)
		_, err = f.svc.Login(ctx, "a@b.com", "Second12!")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestMemoryStorageTargetedWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newUser := func(t *testing.T) (*auth.MemoryStorage, *auth.User) {
		t.Helper()
		store := auth.NewMemoryStorage()
		u := &auth.User{Email: "a@b.com", PasswordHash: "old-hash", Name: "Ann", Address: "Riga"}
		require.NoError(t, store.CreateUser(ctx, u))
		return store, u
	}

	t.Run("update profile keeps credentials", func(t *testing.T) {
		t.Parallel()
		store, u := newUser(t)
		require.NoError(t, store.SetResetToken(ctx, u.ID, "tok"))

		got, err := store.UpdateProfile(ctx, u.ID, auth.ProfileInput{Address: "Oslo"})
		require.NoError(t, err)
		assert.Equal(t, "Ann", got.Name)
		assert.Equal(t, "Oslo", got.Address)
		assert.Equal(t, "old-hash", got.PasswordHash)
		assert.Equal(t, "tok", got.ResetToken)

		_, err = store.UpdateProfile(ctx, "ghost", auth.ProfileInput{Name: "x"})
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("consume reset token once", func(t *testing.T) {
		t.Parallel()
		store, u := newUser(t)
		require.NoError(t, store.SetResetToken(ctx, u.ID, "tok"))

		_, err := store.ConsumeResetToken(ctx, "a@b.com", "other", "new-hash")
		assert.ErrorIs(t, err, auth.ErrNotFound)
		_, err = store.ConsumeResetToken(ctx, "a@b.com", "", "new-hash")
		assert.ErrorIs(t, err, auth.ErrNotFound)

		got, err := store.ConsumeResetToken(ctx, "a@b.com", "tok", "new-hash")
		require.NoError(t, err)
		assert.Equal(t, "new-hash", got.PasswordHash)
		assert.Empty(t, got.ResetToken)

		_, err = store.ConsumeResetToken(ctx, "a@b.com", "tok", "newer-hash")
		assert.ErrorIs(t, err, auth.ErrNotFound)

		stored, err := store.GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "new-hash", stored.PasswordHash)
	})

	t.Run("set reset token on unknown user", func(t *testing.T) {
		t.Parallel()
		store := auth.NewMemoryStorage()
		assert.ErrorIs(t, store.SetResetToken(ctx, "ghost", "tok"), auth.ErrNotFound)
	})
}
