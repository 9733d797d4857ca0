package post

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authpost/handler"
	"github.com/dmitrymomot/authpost/pkg/auth"
	"github.com/dmitrymomot/authpost/pkg/binder"
	"github.com/dmitrymomot/authpost/pkg/logger"
)

// PostService is the post resource the router exposes. *Service implements it.
type PostService interface {
	Create(ctx context.Context, authorID string, in Input) (*Post, error)
	Update(ctx context.Context, id string, in Input) (*Post, error)
	Get(ctx context.Context, id string) (*Summary, error)
	Delete(ctx context.Context, id string) (*Post, error)
	List(ctx context.Context) (*List, error)
}

type routerConfig struct {
	errorHandler handler.ErrorHandler[handler.Context]
	logger       *slog.Logger
}

type Option func(*routerConfig)

func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(c *routerConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *routerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

type createRequest struct {
	Title string `json:"title" validate:"max=300"`
	Body  string `json:"body"`
}

type updateRequest struct {
	ID    string `json:"-" path:"postId"`
	Title string `json:"title" validate:"max=300"`
	Body  string `json:"body"`
}

type idRequest struct {
	ID string `path:"postId"`
}

// Router mounts the post endpoints. Mutations require a session token:
//
//	POST   /create
//	PUT    /update/{postId}
//	DELETE /delete/{postId}
//	GET    /posts/{postId}
//	GET    /posts
func Router(svc PostService, authn auth.Authenticator, opts ...Option) chi.Router {
	r := chi.NewRouter()
	Register(r, svc, authn, opts...)
	return r
}

// Register adds the post endpoints to an existing router.
func Register(r chi.Router, svc PostService, authn auth.Authenticator, opts ...Option) {
	cfg := &routerConfig{logger: logger.Discard()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = handler.NewErrorHandler(cfg.logger, handler.WithClassifier(ErrorClassifier))
	}

	h := &handlers{svc: svc}
	eh := cfg.errorHandler
	pathParams := binder.Path(chi.URLParam)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(authn,
			auth.WithErrorResponder(handler.Responder(eh)),
			auth.WithMiddlewareLogger(cfg.logger),
		))
		r.Post("/create", handler.Wrap(h.create,
			handler.WithBinders[handler.Context, createRequest](binder.JSON()),
			handler.WithValidation[handler.Context, createRequest](),
			handler.WithErrorHandler[handler.Context, createRequest](eh),
		))
		r.Put("/update/{postId}", handler.Wrap(h.update,
			handler.WithBinders[handler.Context, updateRequest](pathParams, binder.JSON()),
			handler.WithValidation[handler.Context, updateRequest](),
			handler.WithErrorHandler[handler.Context, updateRequest](eh),
		))
		r.Delete("/delete/{postId}", handler.Wrap(h.delete,
			handler.WithBinders[handler.Context, idRequest](pathParams),
			handler.WithErrorHandler[handler.Context, idRequest](eh),
		))
	})

	r.Get("/posts/{postId}", handler.Wrap(h.get,
		handler.WithBinders[handler.Context, idRequest](pathParams),
		handler.WithErrorHandler[handler.Context, idRequest](eh),
	))
	r.Get("/posts", handler.Wrap(h.list,
		handler.WithErrorHandler[handler.Context, struct{}](eh),
	))
}

type handlers struct {
	svc PostService
}

func (h *handlers) create(ctx handler.Context, req createRequest) handler.Response {
	var author string
	if u, ok := auth.UserFromContext(ctx); ok {
		author = u.ID
	}
	p, err := h.svc.Create(ctx, author, Input{Title: req.Title, Body: req.Body})
	if err != nil {
		return handler.Error(err)
	}
	return handler.Created(p, "Success")
}

func (h *handlers) update(ctx handler.Context, req updateRequest) handler.Response {
	p, err := h.svc.Update(ctx, req.ID, Input{Title: req.Title, Body: req.Body})
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(p)
}

func (h *handlers) get(ctx handler.Context, req idRequest) handler.Response {
	p, err := h.svc.Get(ctx, req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(p)
}

func (h *handlers) delete(ctx handler.Context, req idRequest) handler.Response {
	p, err := h.svc.Delete(ctx, req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(p)
}

func (h *handlers) list(ctx handler.Context, _ struct{}) handler.Response {
	posts, err := h.svc.List(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(posts)
}
