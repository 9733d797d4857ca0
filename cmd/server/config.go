package main

import (
	"github.com/dmitrymomot/authpost/pkg/email"
	"github.com/dmitrymomot/authpost/pkg/httpserver"
	"github.com/dmitrymomot/authpost/pkg/jwt"
	"github.com/dmitrymomot/authpost/pkg/mongo"
)

// Config is read from the environment, optionally seeded from .env.
type Config struct {
	AppName          string `env:"APP_NAME" envDefault:"authpost"`
	AppEnv           string `env:"APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL"`
	BcryptCost       int    `env:"BCRYPT_COST" envDefault:"10"`
	ResetPasswordURL string `env:"RESET_PASSWORD_URL" envDefault:"http://localhost:8001/reset-password"`

	HTTP  httpserver.Config
	Mongo mongo.Config
	JWT   jwt.Config
	Email email.Config
}
