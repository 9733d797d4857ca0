package account

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authpost/handler"
	"github.com/dmitrymomot/authpost/pkg/auth"
	"github.com/dmitrymomot/authpost/pkg/binder"
	"github.com/dmitrymomot/authpost/pkg/logger"
)

// Service is the account flow the router exposes. *auth.Service implements it.
type Service interface {
	auth.Authenticator
	Signup(ctx context.Context, in auth.SignupInput) (*auth.AuthResult, error)
	Login(ctx context.Context, email, password string) (*auth.AuthResult, error)
	GetProfile(ctx context.Context, identity *auth.User) (*auth.Profile, error)
	UpdateProfile(ctx context.Context, identity *auth.User, in auth.ProfileInput) (*auth.Profile, error)
	ForgotPassword(ctx context.Context, email string) (*auth.ResetRequest, error)
	VerifyToken(ctx context.Context, token string) (*auth.VerifiedToken, error)
	ChangePassword(ctx context.Context, token, password string) (*auth.ChangeResult, error)
}

type routerConfig struct {
	errorHandler handler.ErrorHandler[handler.Context]
	logger       *slog.Logger
}

type Option func(*routerConfig)

// WithErrorHandler replaces the default error handler, which only knows the
// account errors.
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

// Router mounts the account endpoints:
//
//	POST /signup
//	POST /login
//	GET  /profile          (session token)
//	POST /profile          (session token)
//	POST /forgot-password
//	POST /verify-token
//	POST /change-password
func Router(svc Service, opts ...Option) chi.Router {
	r := chi.NewRouter()
	Register(r, svc, opts...)
	return r
}

// Register adds the account endpoints to an existing router.
func Register(r chi.Router, svc Service, opts ...Option) {
	cfg := &routerConfig{logger: logger.Discard()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = handler.NewErrorHandler(cfg.logger, handler.WithClassifier(ErrorClassifier))
	}

	h := &handlers{svc: svc}
	eh := cfg.errorHandler

	r.Post("/signup", handler.Wrap(h.signup,
		handler.WithBinders[handler.Context, signupRequest](binder.JSON()),
		handler.WithValidation[handler.Context, signupRequest](),
		handler.WithErrorHandler[handler.Context, signupRequest](eh),
	))
	r.Post("/login", handler.Wrap(h.login,
		handler.WithBinders[handler.Context, loginRequest](binder.JSON()),
		handler.WithValidation[handler.Context, loginRequest](),
		handler.WithErrorHandler[handler.Context, loginRequest](eh),
	))

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(svc,
			auth.WithErrorResponder(handler.Responder(eh)),
			auth.WithMiddlewareLogger(cfg.logger),
		))
		r.Get("/profile", handler.Wrap(h.getProfile,
			handler.WithErrorHandler[handler.Context, struct{}](eh),
		))
		r.Post("/profile", handler.Wrap(h.updateProfile,
			handler.WithBinders[handler.Context, profileRequest](binder.JSON()),
			handler.WithValidation[handler.Context, profileRequest](),
			handler.WithErrorHandler[handler.Context, profileRequest](eh),
		))
	})

	r.Post("/forgot-password", handler.Wrap(h.forgotPassword,
		handler.WithBinders[handler.Context, forgotPasswordRequest](binder.Query(), binder.JSON()),
		handler.WithValidation[handler.Context, forgotPasswordRequest](),
		handler.WithErrorHandler[handler.Context, forgotPasswordRequest](eh),
	))
	r.Post("/verify-token", handler.Wrap(h.verifyToken,
		handler.WithBinders[handler.Context, verifyTokenRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, verifyTokenRequest](eh),
	))
	r.Post("/change-password", handler.Wrap(h.changePassword,
		handler.WithBinders[handler.Context, changePasswordRequest](binder.JSON()),
		handler.WithValidation[handler.Context, changePasswordRequest](),
		handler.WithErrorHandler[handler.Context, changePasswordRequest](eh),
	))
}

const tokenMessage = "Enjoy your token !!"

type handlers struct {
	svc Service
}

func (h *handlers) signup(ctx handler.Context, req signupRequest) handler.Response {
	res, err := h.svc.Signup(ctx, auth.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Address:  req.Address,
	})
	if err != nil {
		return handler.Error(err)
	}
	return handler.Created(res, tokenMessage)
}

func (h *handlers) login(ctx handler.Context, req loginRequest) handler.Response {
	res, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(res, handler.WithMessage(tokenMessage))
}

func (h *handlers) getProfile(ctx handler.Context, _ struct{}) handler.Response {
	user, _ := auth.UserFromContext(ctx)
	profile, err := h.svc.GetProfile(ctx, user)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(profile)
}

func (h *handlers) updateProfile(ctx handler.Context, req profileRequest) handler.Response {
	user, _ := auth.UserFromContext(ctx)
	profile, err := h.svc.UpdateProfile(ctx, user, auth.ProfileInput{Name: req.Name, Address: req.Address})
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(profile)
}

func (h *handlers) forgotPassword(ctx handler.Context, req forgotPasswordRequest) handler.Response {
	res, err := h.svc.ForgotPassword(ctx, req.Email)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(res, handler.WithStatus(http.StatusCreated))
}

func (h *handlers) verifyToken(ctx handler.Context, req verifyTokenRequest) handler.Response {
	res, err := h.svc.VerifyToken(ctx, req.Token)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(res)
}

func (h *handlers) changePassword(ctx handler.Context, req changePasswordRequest) handler.Response {
	res, err := h.svc.ChangePassword(ctx, req.Token, req.Password)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(res)
}
