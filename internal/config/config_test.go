package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")
	t.Setenv("ENV", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":5001", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 14*24*time.Hour, cfg.RefreshTTL)
	assert.Equal(t, 15*time.Minute, cfg.RecoveryTTL)
	assert.Equal(t, 3, cfg.PasswordMinLen)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")
	t.Setenv("ENV", "prod")
	t.Setenv("ACCESS_TOKEN_TTL", "30m")
	t.Setenv("RECOVERY_TTL", "5m")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://hrm.example.com, https://staging.hrm.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Minute, cfg.RecoveryTTL)
	assert.Equal(t, 8, cfg.PasswordMinLen, "prod tightens the minimum password length")
	assert.Equal(t, []string{"https://hrm.example.com", "https://staging.hrm.example.com"}, cfg.AllowedOrigins)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiry)
}
