package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage keeps users in process memory. It is safe for concurrent use
// and backs tests and local runs without MongoDB.
type MemoryStorage struct {
	mu      sync.RWMutex
	byID    map[string]*User
	byEmail map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (m *MemoryStorage) CreateUser(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[u.Email]; ok {
		return ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	c := *u
	m.byID[c.ID] = &c
	m.byEmail[c.Email] = c.ID
	return nil
}

func (m *MemoryStorage) GetUserByID(_ context.Context, id string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *u
	return &c, nil
}

func (m *MemoryStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	m.mu.RLock()
	id, ok := m.byEmail[email]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return m.GetUserByID(ctx, id)
}

func (m *MemoryStorage) GetUserByEmailAndResetToken(ctx context.Context, email, resetToken string) (*User, error) {
	if resetToken == "" {
		return nil, ErrNotFound
	}
	u, err := m.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u.ResetToken != resetToken {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *MemoryStorage) UpdateProfile(_ context.Context, id string, in ProfileInput) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	c := *u
	return &c, nil
}

func (m *MemoryStorage) SetResetToken(_ context.Context, id, resetToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.ResetToken = resetToken
	return nil
}

func (m *MemoryStorage) ConsumeResetToken(_ context.Context, email, resetToken, passwordHash string) (*User, error) {
	if resetToken == "" {
		return nil, ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byID[m.byEmail[email]]
	if !ok || u.ResetToken != resetToken {
		return nil, ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.ResetToken = ""
	c := *u
	return &c, nil
}
