package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-0123456789"

func TestNewJWTConfig_DefaultValues(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, testSecret, cfg.Secret)
	assert.Equal(t, 24, cfg.ExpirationHours, "should use default expiration of 24 hours")
	assert.Equal(t, 24*time.Hour, cfg.TTL())
}

func TestNewJWTConfig_Expiration(t *testing.T) {
	tests := []struct {
		name          string
		expiration    string
		expectedHours int
		wantErr       bool
	}{
		{"custom", "48", 48, false},
		{"one hour", "1", 1, false},
		{"zero", "0", 0, true},
		{"negative", "-3", 0, true},
		{"not a number", "soon", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", testSecret)
			t.Setenv("JWT_EXPIRATION_HOURS", tt.expiration)

			cfg, err := NewJWTConfig()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedHours, cfg.ExpirationHours)
		})
	}
}

func TestNewJWTConfig_Secret(t *testing.T) {
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	t.Setenv("JWT_SECRET", "")
	_, err := NewJWTConfig()
	assert.ErrorContains(t, err, "JWT_SECRET is required")
	assert.False(t, JWTEnabled())

	t.Setenv("JWT_SECRET", "short")
	_, err = NewJWTConfig()
	assert.ErrorContains(t, err, "at least 16 characters")
	assert.True(t, JWTEnabled())
}
