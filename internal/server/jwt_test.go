package server

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonathan/candidate-ranker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

func setupTestJWTService(_ *testing.T, expirationHours int) *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testSecret,
		ExpirationHours: expirationHours,
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	service := setupTestJWTService(t, 24)

	token, err := service.GenerateToken("recruiting-ui", "rank")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3, "JWT has three dot-separated parts")

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "recruiting-ui", claims.Subject)
	assert.Equal(t, "rank", claims.Scope)

	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "recruiting-ui", subject)
}

func TestJWTService_GenerateToken_EmptyClient(t *testing.T) {
	_, err := setupTestJWTService(t, 24).GenerateToken("", "")
	assert.Error(t, err)
}

func TestJWTService_Expiration(t *testing.T) {
	service := setupTestJWTService(t, 2)
	issued := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }

	token, err := service.GenerateToken("batch-runner", "")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(2*time.Hour), claims.ExpiresAt.Time)

	service.now = func() time.Time { return issued.Add(3 * time.Hour) }
	_, err = service.ValidateToken(token)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token expired")
}

func TestJWTService_ValidateToken_Rejects(t *testing.T) {
	service := setupTestJWTService(t, 24)

	other := NewJWTService(&config.JWTConfig{Secret: "another-secret-of-enough-length", ExpirationHours: 24})
	forged, err := other.GenerateToken("recruiting-ui", "")
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "recruiting-ui"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"wrong secret", forged},
		{"alg none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTService_AsTokenValidator(t *testing.T) {
	service := setupTestJWTService(t, 24)
	token, err := service.GenerateToken("recruiting-ui", "")
	require.NoError(t, err)

	got, err := service.AsTokenValidator().ValidateToken(token)
	require.NoError(t, err)
	subject, err := got.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "recruiting-ui", subject)

	_, err = service.AsTokenValidator().ValidateToken("bad")
	assert.Error(t, err)
}
