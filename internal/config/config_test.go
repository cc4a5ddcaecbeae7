package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"Authorization", "Content-Type"}, cfg.CORS.AllowedHeaders)
	assert.Equal(t, 300, cfg.CORS.MaxAge)
	assert.Equal(t, int64(1<<20), cfg.Body.MaxBytes)
}

func TestLoadEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DAPPBOT_LOG_LEVEL", "debug")
	t.Setenv("DAPPBOT_BODY_MAX_BYTES", "2048")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, int64(2048), cfg.Body.MaxBytes)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dappbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: warn
  format: text
cors:
  allowed_origins:
    - https://dapp.bot
`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, []string{"https://dapp.bot"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"Authorization", "Content-Type"}, cfg.CORS.AllowedHeaders)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o600))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", LogConfig{Level: "debug"}.SlogLevel().String())
	assert.Equal(t, "ERROR", LogConfig{Level: "error"}.SlogLevel().String())
	assert.Equal(t, "INFO", LogConfig{Level: "loud"}.SlogLevel().String())
}
