package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5*time.Minute, cfg.Server.LeasePeriod)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Replay.Enabled)
	assert.Empty(t, cfg.Database.URL)
}

func TestMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  address: ":9090"
  lease_period: 2m
  debug: true
database:
  url: "postgres://localhost/knight"
logging:
  level: debug
  format: console
content:
  sets:
    - data/expansion.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 2*time.Minute, cfg.Server.LeasePeriod)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, "postgres://localhost/knight", cfg.Database.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"data/expansion.yaml"}, cfg.Content.Sets)
}

func TestInvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  lease_period: -1s\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lease_period")
}

func TestMalformedYAMLRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
