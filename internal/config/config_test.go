package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ".env", cfg.EnvFile)
	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, int64(10000), cfg.Probe.ConnectionTimeoutMs)
	assert.Equal(t, int64(5000), cfg.Probe.RPCCallTimeoutMs)
	assert.Equal(t, 4, cfg.Probe.MaxConcurrent)
	assert.Equal(t, 10, cfg.Probe.BurstLimit)
	assert.Equal(t, 5, cfg.Explorer.RateLimit)
	assert.NotNil(t, cfg.Explorer.APIURLs)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
envFile: deploy.env
server:
  port: ":9090"
logging:
  level: debug
probe:
  maxConcurrent: 2
  rateLimit: 3
explorer:
  apiUrls:
    bsc: http://localhost:1234/api
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "deploy.env", cfg.EnvFile)
	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 2, cfg.Probe.MaxConcurrent)
	assert.Equal(t, 3, cfg.Probe.RateLimit)
	assert.Equal(t, 3, cfg.Probe.BurstLimit)
	assert.Equal(t, "http://localhost:1234/api", cfg.Explorer.APIURLs["bsc"])
	assert.Equal(t, 30, cfg.Server.WriteTimeout)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}
