package post

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/authpost/pkg/logger"
)

// Service implements the post resource on top of a Storage.
type Service struct {
	storage Storage
	logger  *slog.Logger
	now     func() time.Time
}

type ServiceOption func(*Service)

func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for CreatedAt.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(storage Storage, opts ...ServiceOption) *Service {
	s := &Service{storage: storage, logger: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("post"))
	return s
}

// Create stores a new post. Title and body are both required; authorID is
// recorded as AuthoredBy and may be empty.
func (s *Service) Create(ctx context.Context, authorID string, in Input) (*Post, error) {
	title, body := strings.TrimSpace(in.Title), in.Body
	if title == "" || strings.TrimSpace(body) == "" {
		return nil, newError(ErrMissingField, "Please pass body and title.")
	}

	p := &Post{
		Title:      title,
		Body:       body,
		AuthoredBy: authorID,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.storage.CreatePost(ctx, p); err != nil {
		return nil, s.storeError(err, "create post")
	}

	s.logger.InfoContext(ctx, "post created", logger.PostID(p.ID), logger.UserID(authorID), logger.Event("post_create"))
	return p, nil
}

// Update overwrites title and body with the non-empty input values.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Post, error) {
	if id == "" {
		return nil, newError(ErrMissingField, "Please pass id for updating the post.")
	}
	p, err := s.storage.GetPost(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "get post")
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		p.Title = title
	}
	if strings.TrimSpace(in.Body) != "" {
		p.Body = in.Body
	}
	if err := s.storage.SavePost(ctx, p); err != nil {
		return nil, s.storeError(err, "save post")
	}
	return p, nil
}

// Get returns the id, title and body of a post.
func (s *Service) Get(ctx context.Context, id string) (*Summary, error) {
	if id == "" {
		return nil, newError(ErrMissingField, "Please pass id for getting the post.")
	}
	p, err := s.storage.GetPost(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "get post")
	}
	return &Summary{ID: p.ID, Title: p.Title, Body: p.Body}, nil
}

// Delete removes a post and returns it.
func (s *Service) Delete(ctx context.Context, id string) (*Post, error) {
	if id == "" {
		return nil, newError(ErrMissingField, "Please pass id for deleting the post.")
	}
	p, err := s.storage.DeletePost(ctx, id)
	if err != nil {
		return nil, s.storeError(err, "delete post")
	}
	s.logger.InfoContext(ctx, "post deleted", logger.PostID(p.ID), logger.Event("post_delete"))
	return p, nil
}

// List returns every post in creation order.
func (s *Service) List(ctx context.Context) (*List, error) {
	posts, err := s.storage.ListPosts(ctx)
	if err != nil {
		return nil, s.storeError(err, "list posts")
	}
	if posts == nil {
		posts = []Post{}
	}
	return &List{PostList: posts}, nil
}

func (s *Service) storeError(err error, op string) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return newError(ErrNotFound, "Post not found")
	case errors.Is(err, ErrDuplicateTitle):
		return newError(ErrDuplicateTitle, "Post with this title already exists")
	}
	return fmt.Errorf("%s: %w", op, err)
}
