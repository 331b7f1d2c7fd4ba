// Package jwtmw issues and verifies the bearer tokens used by the API.
package jwtmw

import (
	"os"
	"time"
)

const (
	// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
	EnvKeyJWTSecret = "JWT_SECRET"
	// EnvKeyJWTTTL is the environment variable holding the token lifetime (Go duration).
	EnvKeyJWTTTL = "JWT_TTL"

	// DefaultTTL is the token lifetime when JWT_TTL is unset or invalid.
	DefaultTTL = 24 * time.Hour
)

// Config holds token settings.
type Config struct {
	Secret string
	TTL    time.Duration
}

// LoadConfig reads token settings from the environment.
func LoadConfig() Config {
	ttl := DefaultTTL
	if raw := os.Getenv(EnvKeyJWTTTL); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			ttl = d
		}
	}
	return Config{
		Secret: os.Getenv(EnvKeyJWTSecret),
		TTL:    ttl,
	}
}
