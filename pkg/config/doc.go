// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv for optional .env files and
// github.com/caarlos0/env/v11 for parsing tagged structs:
//
//	if err := config.LoadEnv(); err != nil {
//		return err
//	}
//	var cfg AppConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Parsed structs are handed explicitly to the constructors that need them;
// nothing in the service reads the environment after startup.
package config
