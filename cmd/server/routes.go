package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authpost/handler"
	"github.com/dmitrymomot/authpost/modules/account"
	"github.com/dmitrymomot/authpost/modules/post"
	"github.com/dmitrymomot/authpost/pkg/clientip"
	"github.com/dmitrymomot/authpost/pkg/httpserver"
	"github.com/dmitrymomot/authpost/pkg/logger"
	"github.com/dmitrymomot/authpost/pkg/requestid"
)

type routeDeps struct {
	log      *slog.Logger
	accounts account.Service
	posts    post.PostService
	checks   []httpserver.CheckFunc
}

func newRouter(d routeDeps) http.Handler {
	errHandler := handler.NewErrorHandler(d.log,
		handler.WithClassifier(account.ErrorClassifier),
		handler.WithClassifier(post.ErrorClassifier),
	)

	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		logger.Middleware(d.log),
		middleware.Recoverer,
	)

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(d.log, d.checks...))

	account.Register(r, d.accounts,
		account.WithErrorHandler(errHandler),
		account.WithLogger(d.log),
	)
	post.Register(r, d.posts, d.accounts,
		post.WithErrorHandler(errHandler),
		post.WithLogger(d.log),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.Responder(errHandler)(w, r, handler.NewHTTPError(http.StatusNotFound, "Not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.Responder(errHandler)(w, r, handler.NewHTTPError(http.StatusMethodNotAllowed, "Method not allowed"))
	})

	return r
}
