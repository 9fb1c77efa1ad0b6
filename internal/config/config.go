// Package config loads runtime settings from the process environment,
// with an optional .env overlay for local development.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds everything the server needs at startup.
//
// Fields:
//   - DatabaseURL: PostgreSQL DSN (pgx).
//   - JWTSecret: HMAC secret for signing tokens (HS256).
//   - Port: HTTP listen port.
//   - AllowedOrigins: origins permitted by CORS.
//   - Environment: "development" or "production"; gates error detail in responses.
type Config struct {
	DatabaseURL    string
	JWTSecret      string
	Port           string
	AllowedOrigins []string
	Environment    string
}

// Load reads configuration from the environment. A .env file is applied
// first if present (ok if missing in prod). Missing DATABASE_URL or
// JWT_SECRET is a fatal configuration error surfaced to the caller.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Port:        getenv("PORT", "5000"),
		Environment: getenv("APP_ENV", EnvDevelopment),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		cfg.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	} else {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	return cfg, nil
}

// IsProduction reports whether error responses should hide internal detail.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
