package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"QUOTEDESK_CONFIG_PATH",
		"QUOTEDESK_API_URL",
		"QUOTEDESK_API_TIMEOUT",
		"QUOTEDESK_SESSION_PATH",
		"QUOTEDESK_SESSION_TTL",
		"QUOTEDESK_LOG_LEVEL",
		"QUOTEDESK_LOG_PATH",
		"QUOTEDESK_PAGE_SIZE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:5000", cfg.API.BaseURL)
	require.Zero(t, cfg.API.Timeout)
	require.Equal(t, 168*time.Hour, cfg.Session.TTL)
	require.Equal(t, 5, cfg.UI.PageSize)
	require.Equal(t, "info", cfg.Log.Level)

	home, err := homedir.Dir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".quotedesk", "session.db"), cfg.Session.Path)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "quotedesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://cpq.example.test
  timeout: 15s
session:
  path: /tmp/qd.db
  ttl: 24h
ui:
  page_size: 10
`), 0o644))

	t.Setenv("QUOTEDESK_CONFIG_PATH", path)
	t.Setenv("QUOTEDESK_LOG_LEVEL", "debug")
	t.Setenv("QUOTEDESK_PAGE_SIZE", "20")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://cpq.example.test", cfg.API.BaseURL)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
	require.Equal(t, "/tmp/qd.db", cfg.Session.Path)
	require.Equal(t, 24*time.Hour, cfg.Session.TTL)
	require.Equal(t, 20, cfg.UI.PageSize)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUOTEDESK_API_TIMEOUT", "soon")
	_, err := Load()
	require.ErrorContains(t, err, "QUOTEDESK_API_TIMEOUT")

	clearEnv(t)
	t.Setenv("QUOTEDESK_PAGE_SIZE", "0")
	_, err = Load()
	require.ErrorContains(t, err, "page_size")

	clearEnv(t)
	t.Setenv("QUOTEDESK_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	require.ErrorContains(t, err, "read config file")
}
