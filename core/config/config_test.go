package config_test

import (
	"testing"

	"subscriber-desk/core/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, float64(180), cfg.Upstream.CacheTTLSeconds)
	assert.Equal(t, 64, cfg.Upstream.CacheMaxEntries)
	assert.Equal(t, "sheets", cfg.Grid.Backend)
	assert.Equal(t, float64(45), cfg.Grid.CacheTTLSeconds)
	assert.False(t, cfg.AuditEnabled)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("UPSTREAM_URL", "http://api.test")
	t.Setenv("GRID_BACKEND", "object")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://api.test", cfg.Upstream.URL)
	assert.Equal(t, "object", cfg.Grid.Backend)
	assert.Equal(t, "9090", cfg.Server.Port)
}
