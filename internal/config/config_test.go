package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 2*time.Second, cfg.Interval())
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipman.hcl")
	content := `
poll_interval = "5s"
log_level     = "debug"
log_json      = true

commands {
  route = "route.exe"
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Interval())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, "route.exe", cfg.Commands.Route)

	// Unset fields keep their defaults.
	assert.Equal(t, "added_routes.json", cfg.LedgerPath)
	assert.Equal(t, "netsh", cfg.Commands.Netsh)
}

func TestLoadInvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipman.hcl")
	require.NoError(t, os.WriteFile(path, []byte("poll_interval = {"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestIntervalGarbageFallsBack(t *testing.T) {
	cfg := &Config{PollInterval: "soon"}
	assert.Equal(t, 2*time.Second, cfg.Interval())

	cfg.PollInterval = "-3s"
	assert.Equal(t, 2*time.Second, cfg.Interval())
}

func TestWriteDefaultRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipman.hcl")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "2s", cfg.PollInterval)
	assert.Equal(t, "powershell", cfg.Commands.PowerShell)
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipman.hcl")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"warn\"\n"), 0o644))

	assert.Error(t, WriteDefault(path))
}
