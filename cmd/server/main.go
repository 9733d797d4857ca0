package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrymomot/authpost/modules/account"
	"github.com/dmitrymomot/authpost/modules/post"
	"github.com/dmitrymomot/authpost/pkg/auth"
	"github.com/dmitrymomot/authpost/pkg/clientip"
	"github.com/dmitrymomot/authpost/pkg/config"
	"github.com/dmitrymomot/authpost/pkg/email"
	"github.com/dmitrymomot/authpost/pkg/httpserver"
	"github.com/dmitrymomot/authpost/pkg/jwt"
	"github.com/dmitrymomot/authpost/pkg/logger"
	"github.com/dmitrymomot/authpost/pkg/mongo"
	"github.com/dmitrymomot/authpost/pkg/requestid"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config) error {
	log := logger.New(
		logger.WithEnvironment(cfg.AppEnv, cfg.AppName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			auth.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	fail := func(msg string, err error) error {
		log.ErrorContext(ctx, msg, logger.Error(err))
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	client, err := mongo.New(connectCtx, cfg.Mongo, log)
	if err != nil {
		return fail("failed to connect to mongo", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("failed to disconnect from mongo", logger.Error(err))
		}
	}()
	db := client.Database(cfg.Mongo.Database)

	users, err := account.NewMongoStorage(connectCtx, db)
	if err != nil {
		return fail("failed to prepare users collection", err)
	}
	posts, err := post.NewMongoStorage(connectCtx, db)
	if err != nil {
		return fail("failed to prepare posts collection", err)
	}

	codec, err := jwt.New(cfg.JWT, jwt.WithIssuer(cfg.AppName))
	if err != nil {
		return fail("invalid token configuration", err)
	}

	sender, err := email.NewFromConfig(cfg.Email)
	if err != nil {
		return fail("invalid email configuration", err)
	}
	if !cfg.Email.UsePostmark() {
		log.Warn("postmark is not configured, emails are written to disk", logger.Component("email"))
	}
	resetHook, err := account.ResetMailer(sender, cfg.ResetPasswordURL)
	if err != nil {
		return fail("invalid reset password url", err)
	}

	accounts := auth.NewService(users, codec,
		auth.WithHasher(auth.NewBcryptHasher(cfg.BcryptCost)),
		auth.WithLogger(log),
		auth.WithResetHook(resetHook),
	)

	router := newRouter(routeDeps{
		log:      log,
		accounts: accounts,
		posts:    post.NewService(posts, post.WithServiceLogger(log)),
		checks:   []httpserver.CheckFunc{mongo.Healthcheck(client)},
	})

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	if err := srv.Run(ctx, router); err != nil {
		return fail("http server failed", err)
	}
	return nil
}
