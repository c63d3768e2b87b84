package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-key")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "test-secret-key", cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
}

func TestNewJWTConfig_Expiration(t *testing.T) {
	tests := []struct {
		name       string
		expiration string
		want       int
		wantErr    bool
	}{
		{"custom", "48", 48, false},
		{"minimum", "1", 1, false},
		{"zero", "0", 0, true},
		{"negative", "-5", 0, true},
		{"not a number", "abc", 0, true},
		{"float", "1.5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret-key")
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), "JWT_EXPIRATION_HOURS")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.ExpirationHours)
		})
	}
}

func TestNewJWTConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := NewJWTConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestOptionalJWTConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg, err := OptionalJWTConfig()
	require.NoError(t, err)
	assert.Nil(t, cfg, "authentication is off without a secret")

	t.Setenv("JWT_SECRET", "s3cret")
	cfg, err = OptionalJWTConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "s3cret", cfg.Secret)

	t.Setenv("JWT_EXPIRATION_HOURS", "0")
	_, err = OptionalJWTConfig()
	assert.Error(t, err)
}

func TestNewJWTConfig_Issuer(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRATION_HOURS", "2")
	t.Setenv("JWT_ISSUER", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "cv-builder", cfg.Issuer)
	assert.Equal(t, 2*time.Hour, cfg.TTL())

	t.Setenv("JWT_ISSUER", "registry.local")
	cfg, err = NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "registry.local", cfg.Issuer)
}
