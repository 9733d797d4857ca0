package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authpost/pkg/jwt"
	"github.com/dmitrymomot/authpost/pkg/logger"
)

const unauthorizedMessage = "Unauthorised access"

// Authenticator resolves a raw session token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*User, error)
}

// ErrorResponder writes an error response for a rejected request.
type ErrorResponder func(w http.ResponseWriter, r *http.Request, err error)

type middlewareConfig struct {
	extractor jwt.Extractor
	onError   ErrorResponder
	logger    *slog.Logger
}

type MiddlewareOption func(*middlewareConfig)

// WithExtractor overrides where the token is looked up.
func WithExtractor(ex jwt.Extractor) MiddlewareOption {
	return func(c *middlewareConfig) {
		if ex != nil {
			c.extractor = ex
		}
	}
}

// WithErrorResponder overrides how rejections are rendered.
func WithErrorResponder(fn ErrorResponder) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onError = fn
		}
	}
}

func WithMiddlewareLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// DefaultExtractor looks for the token in the Authorization bearer header,
// then the "token" query parameter, then the "token" cookie.
func DefaultExtractor() jwt.Extractor {
	return jwt.ChainExtractors(
		jwt.BearerExtractor,
		jwt.QueryExtractor("token"),
		jwt.CookieExtractor("token"),
	)
}

// Middleware rejects requests without a valid session token. Accepted
// requests carry the user (without secrets) and the raw token in their context.
func Middleware(a Authenticator, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		extractor: DefaultExtractor(),
		onError: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, unauthorizedMessage, http.StatusUnauthorized)
		},
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, err := cfg.extractor(r)
			if err != nil {
				cfg.onError(w, r, &Error{Kind: ErrUnauthorized, Message: unauthorizedMessage, Cause: err})
				return
			}

			user, err := a.Authenticate(ctx, token)
			if err != nil {
				cfg.logger.DebugContext(ctx, "request rejected", logger.Error(err), logger.Component("auth"))
				cfg.onError(w, r, err)
				return
			}

			ctx = WithUser(ctx, user)
			ctx = jwt.WithToken(ctx, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoggerExtractor adds the authenticated user id to log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if u, ok := UserFromContext(ctx); ok {
			return logger.UserID(u.ID), true
		}
		return slog.Attr{}, false
	}
}
