package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/transit")
	t.Setenv("PORT", "")
	t.Setenv("API_PORT", "")
	t.Setenv("PROJECTION_HORIZON_YEARS", "")
	t.Setenv("API_LOG_LEVEL", "")
	t.Setenv("API_BEARER_TOKEN", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 6, cfg.HorizonYears)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ListenAddr())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/transit")
	t.Setenv("PORT", "9001")
	t.Setenv("PROJECTION_HORIZON_YEARS", "10")
	t.Setenv("API_LOG_LEVEL", "warn")
	t.Setenv("API_BEARER_TOKEN", "sekrit")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, 10, cfg.HorizonYears)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, "sekrit", cfg.BearerToken)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/transit")

	t.Setenv("PORT", "zero")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("PORT", "")
	t.Setenv("PROJECTION_HORIZON_YEARS", "-3")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("PROJECTION_HORIZON_YEARS", "")
	t.Setenv("API_LOG_LEVEL", "loud")
	_, err = Load()
	assert.Error(t, err)
}
