package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultJWTExpirationHours = 24
	defaultJWTIssuer          = "cv-builder"
)

// JWTConfig holds the signing settings for registry write tokens.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
	// Issuer is stamped into issued tokens and, when set, required on
	// validation.
	Issuer string
}

// TTL is the lifetime of an issued token.
func (c *JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpirationHours) * time.Hour
}

// NewJWTConfig reads JWT_SECRET (required), JWT_EXPIRATION_HOURS (default 24)
// and JWT_ISSUER (default "cv-builder").
func NewJWTConfig() (*JWTConfig, error) {
	cfg := &JWTConfig{
		Secret:          os.Getenv("JWT_SECRET"),
		ExpirationHours: defaultJWTExpirationHours,
		Issuer:          defaultJWTIssuer,
	}
	if cfg.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if raw := strings.TrimSpace(os.Getenv("JWT_EXPIRATION_HOURS")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS %q: %w", raw, err)
		}
		cfg.ExpirationHours = hours
	}
	if issuer := strings.TrimSpace(os.Getenv("JWT_ISSUER")); issuer != "" {
		cfg.Issuer = issuer
	}

	if cfg.ExpirationHours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", cfg.ExpirationHours)
	}
	return cfg, nil
}

// OptionalJWTConfig returns nil without error when JWT_SECRET is unset, which
// leaves the registry's write routes open.
func OptionalJWTConfig() (*JWTConfig, error) {
	if os.Getenv("JWT_SECRET") == "" {
		return nil, nil
	}
	return NewJWTConfig()
}
