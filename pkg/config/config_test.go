package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Addr)
	assert.Equal(t, "json", cfg.App.LogFormat)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.Dashboard.SettleTimeout)
	assert.Equal(t, 64, cfg.Dashboard.MaxSessions)
	assert.True(t, cfg.App.IsDev())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SELLERDASH_API_BASE_URL", "https://analytics.example.com")
	t.Setenv("SELLERDASH_DASHBOARD_MAX_SESSIONS", "8")
	t.Setenv("SELLERDASH_DASHBOARD_FETCH_TIMEOUT", "2s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "https://analytics.example.com", cfg.API.BaseURL)
	assert.Equal(t, 8, cfg.Dashboard.MaxSessions)
	assert.Equal(t, 2*time.Second, cfg.Dashboard.FetchTimeout)
}

func TestLoadDotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SELLERDASH_APP_ADDR=:9999\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SELLERDASH_APP_ADDR") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.App.Addr)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("SELLERDASH_APP_LOG_FORMAT", "xml")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LogFormat")
}

func TestValidateBaseURL(t *testing.T) {
	cfg := &Config{
		App:       AppConfig{Env: "dev", Addr: ":8080", LogFormat: "json"},
		API:       APIConfig{BaseURL: "not a url", Timeout: time.Second},
		Dashboard: DashboardConfig{FetchTimeout: time.Second, MaxSessions: 1, SessionIdle: time.Minute, RefreshBurst: 1},
	}
	require.Error(t, cfg.Validate())

	cfg.API.BaseURL = ""
	cfg.API.Mock = true
	require.NoError(t, cfg.Validate())
}
