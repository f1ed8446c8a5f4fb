package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("LINKVAULT_JWT_SECRET", "")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNewConfigDefaults(t *testing.T) {
	t.Setenv("LINKVAULT_JWT_SECRET", "test-secret")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}

func TestNewConfigRejectsBadSSLMode(t *testing.T) {
	t.Setenv("LINKVAULT_JWT_SECRET", "test-secret")
	t.Setenv("LINKVAULT_DB_SSL_MODE", "sometimes")

	_, err := NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SSL mode")
}
