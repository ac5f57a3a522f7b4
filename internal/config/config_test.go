package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, uint16(4000), cfg.Browser.DefaultPort)
	assert.Equal(t, 30*time.Millisecond, cfg.Browser.TickInterval)
	assert.Equal(t, 3*time.Second, cfg.Probe.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("BROWSER_TICK_INTERVAL", "50ms")
	t.Setenv("PROBE_VERSION", "1.2")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 50*time.Millisecond, cfg.Browser.TickInterval)
	assert.Equal(t, "1.2", cfg.Probe.Version)
}
