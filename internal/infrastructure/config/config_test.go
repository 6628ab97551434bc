package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "static", cfg.Carrier.Mode)
	assert.Equal(t, 3*time.Second, cfg.Assessment.EvaluatorTimeout)
	assert.Equal(t, "ZA", cfg.Assessment.HomeCountry)
	assert.Equal(t, "196.", cfg.Assessment.HomeIPPrefix)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9999
carrier:
  mode: redis
  redis:
    addr: redis.internal:6379
assessment:
  evaluator_timeout: 5s
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Carrier.Mode)
	assert.Equal(t, "redis.internal:6379", cfg.Carrier.Redis.Addr)
	assert.Equal(t, 5*time.Second, cfg.Assessment.EvaluatorTimeout)

	// untouched keys keep their defaults
	assert.Equal(t, "ZA", cfg.Assessment.HomeCountry)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SSRE_SERVER_PORT", "7070")
	t.Setenv("SSRE_CARRIER_MODE", "http")
	t.Setenv("SSRE_ENVIRONMENT", "staging")

	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "http", cfg.Carrier.Mode)
	assert.Equal(t, "staging", cfg.Environment)
}
