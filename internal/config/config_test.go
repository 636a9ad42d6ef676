package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no stray launchdash.yaml is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultDataPath, cfg.DataPath)
	assert.Equal(t, DefaultHost, cfg.Host)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.OTLPEndpoint)
	assert.Equal(t, "127.0.0.1:8050", cfg.Addr())
	assert.Empty(t, cfg.Source())
}

func TestLoad_Env(t *testing.T) {
	chdir(t)
	t.Setenv("LAUNCHDASH_DATA_PATH", "/data/launches.csv")
	t.Setenv("LAUNCHDASH_PORT", "9000")
	t.Setenv("LAUNCHDASH_DEBUG", "true")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/data/launches.csv", cfg.DataPath)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
}

func TestLoad_File(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "launchdash.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: 0.0.0.0\nport: 8080\ndata_path: launches.csv\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.Equal(t, "launches.csv", cfg.DataPath)
	assert.Equal(t, path, cfg.Source())

	t.Setenv("LAUNCHDASH_PORT", "8081")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port, "environment overrides file")
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	dir := chdir(t)
	_, err := Load(filepath.Join(dir, "absent.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidPort(t *testing.T) {
	chdir(t)
	t.Setenv("LAUNCHDASH_PORT", "70000")
	_, err := Load("")
	assert.ErrorContains(t, err, "out of range")
}
