package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/cv-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	cfg := &config.JWTConfig{
		Secret:          testSecret,
		ExpirationHours: expirationHours,
	}
	return NewJWTService(cfg)
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("cli-laptop")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parts := strings.Split(token, ".")
	assert.Equal(t, 3, len(parts), "JWT should have 3 parts separated by dots")
}

func TestJWTService_GenerateToken_EmptyClient(t *testing.T) {
	service := setupTestJWTService(t, 24)

	_, err := service.GenerateToken("")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_Success(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("cli-laptop")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cli-laptop", claims.ClientID)
	assert.Equal(t, "cli-laptop", claims.GetClientID())
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ValidateToken_InvalidSignature(t *testing.T) {
	service := setupTestJWTService(t, 24)
	other := NewJWTService(&config.JWTConfig{Secret: "another-secret", ExpirationHours: 24})

	token, err := other.GenerateToken("cli")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signature")
}

func TestJWTService_ValidateToken_MalformedToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	tests := []string{"", "not-a-jwt", "a.b.c", "only.two"}
	for _, token := range tests {
		_, err := service.ValidateToken(token)
		assert.Error(t, err, "token %q should be rejected", token)
	}
}

func TestJWTService_TokenExpiration(t *testing.T) {
	service := setupTestJWTService(t, 1)
	service.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := service.GenerateToken("cli")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	require.NoError(t, err, "still valid on the issuing clock")

	service.now = time.Now
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_Issuer(t *testing.T) {
	issuing := NewJWTService(&config.JWTConfig{Secret: testSecret, ExpirationHours: 1, Issuer: "cv-builder"})
	token, err := issuing.GenerateToken("cli")
	require.NoError(t, err)

	claims, err := issuing.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cv-builder", claims.Issuer)

	strict := NewJWTService(&config.JWTConfig{Secret: testSecret, ExpirationHours: 1, Issuer: "elsewhere"})
	_, err = strict.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_NoClientID(t *testing.T) {
	service := setupTestJWTService(t, 24)

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_WrongAlgorithm(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{ClientID: "cli"})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assert.Error(t, err)
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 24)
	token, err := service.GenerateToken("cli")
	require.NoError(t, err)

	claims, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cli", claims.GetClientID())

	_, err = service.AsTokenValidator().ValidateToken("garbage")
	assert.Error(t, err)
}
