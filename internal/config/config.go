// Package config holds the runtime settings of the recipes API server.
// Values come from flags, each bound to an environment variable; main loads
// a .env file first so local development needs no exported variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - Port: TCP port to listen on.
//   - JWTSecret: HMAC secret for HS256 tokens. Mandatory, no default.
//   - TokenTTL: validity window of issued tokens.
//   - UsersFile / DatabasePath: user source; the database wins when both are set.
//   - RecipesFile: optional catalog override; the embedded catalog is used otherwise.
//   - ClientOrigin: value for Access-Control-Allow-Origin.
//   - LogLevel / LogFormat: zerolog level and "json" or "console" output.
type Config struct {
	Port         string
	JWTSecret    string
	TokenTTL     time.Duration
	UsersFile    string
	DatabasePath string
	RecipesFile  string
	ClientOrigin string
	LogLevel     string
	LogFormat    string
}

// MinSecretLen is the secret length below which Validate's caller should warn.
const MinSecretLen = 32

var (
	ErrMissingSecret     = errors.New("JWT_SECRET is required")
	ErrMissingUserSource = errors.New("a user source is required: set USERS_FILE or DATABASE_PATH")
)

// LoadDefaults populates c with development defaults. There is deliberately no default secret.
func (c *Config) LoadDefaults() {
	c.Port = "3001"
	c.TokenTTL = 3 * time.Hour
	c.ClientOrigin = "*"
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// Validate reports the first setting that prevents the server from starting.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingSecret
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %v", c.TokenTTL)
	}
	if c.UsersFile == "" && c.DatabasePath == "" {
		return ErrMissingUserSource
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// WeakSecret reports whether the secret is shorter than MinSecretLen.
func (c *Config) WeakSecret() bool { return len(c.JWTSecret) < MinSecretLen }

// Addr is the listen address derived from Port.
func (c *Config) Addr() string { return ":" + c.Port }
