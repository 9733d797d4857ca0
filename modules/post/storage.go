package post

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Storage persists posts. Implementations return ErrNotFound when nothing
// matches, ErrDuplicateTitle on a unique title violation and wrap transport
// failures with ErrStoreUnavailable.
type Storage interface {
	// CreatePost inserts p and assigns p.ID.
	CreatePost(ctx context.Context, p *Post) error
	GetPost(ctx context.Context, id string) (*Post, error)
	SavePost(ctx context.Context, p *Post) error
	// DeletePost removes the post and returns it as it was stored.
	DeletePost(ctx context.Context, id string) (*Post, error)
	// ListPosts returns posts in creation order.
	ListPosts(ctx context.Context) ([]Post, error)
}

// MemoryStorage is an in-process Storage for tests and local runs.
type MemoryStorage struct {
	mu    sync.RWMutex
	posts []Post
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) CreatePost(_ context.Context, p *Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.titleTaken(p.Title, "") {
		return ErrDuplicateTitle
	}
	p.ID = uuid.NewString()
	m.posts = append(m.posts, *p)
	return nil
}

func (m *MemoryStorage) GetPost(_ context.Context, id string) (*Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i := m.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := m.posts[i]
	return &p, nil
}

func (m *MemoryStorage) SavePost(_ context.Context, p *Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(p.ID)
	if i < 0 {
		return ErrNotFound
	}
	if m.titleTaken(p.Title, p.ID) {
		return ErrDuplicateTitle
	}
	m.posts[i] = *p
	return nil
}

func (m *MemoryStorage) DeletePost(_ context.Context, id string) (*Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.index(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := m.posts[i]
	m.posts = slices.Delete(m.posts, i, i+1)
	return &p, nil
}

func (m *MemoryStorage) ListPosts(_ context.Context) ([]Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.posts), nil
}

func (m *MemoryStorage) index(id string) int {
	return slices.IndexFunc(m.posts, func(p Post) bool { return p.ID == id })
}

func (m *MemoryStorage) titleTaken(title, exceptID string) bool {
	return slices.ContainsFunc(m.posts, func(p Post) bool {
		return p.Title == title && p.ID != exceptID
	})
}
