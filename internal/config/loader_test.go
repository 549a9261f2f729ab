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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.API.StatusTimeout)
	assert.Equal(t, 15*time.Second, cfg.API.ControlTimeout)
	assert.Equal(t, 20*time.Second, cfg.API.HistoryTimeout)
	assert.Equal(t, 5*time.Second, cfg.Refresh.Active)
	assert.Equal(t, 30*time.Second, cfg.Refresh.Idle)
	assert.Equal(t, 60*time.Second, cfg.Cache.HistoryTTL)
	assert.Equal(t, 30*time.Second, cfg.Cache.SettingsTTL)
	assert.Equal(t, "", cfg.API.URL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  url: http://127.0.0.1:5001
  key: test-key
log:
  level: debug
refresh:
  idle: 45s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5001", cfg.API.URL)
	assert.Equal(t, "test-key", cfg.API.Key)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 45*time.Second, cfg.Refresh.Idle)
	// Untouched values fall back to defaults.
	assert.Equal(t, 5*time.Second, cfg.Refresh.Active)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BOTPANEL_API_URL", "https://bot.example.com")
	t.Setenv("BOTPANEL_API_KEY", "env-secret")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "https://bot.example.com", cfg.API.URL)
	assert.Equal(t, "env-secret", cfg.API.Key)
}

func TestValidateAPI(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.ValidateAPI(), ErrMissingURL)

	cfg.API.URL = "ftp://bot.example.com"
	assert.Error(t, cfg.ValidateAPI())

	cfg.API.URL = "http://127.0.0.1:5001"
	assert.NoError(t, cfg.ValidateAPI())
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o600))

	reloaded := make(chan *Config, 1)
	w, err := NewWatcher(path, func(cfg *Config) {
		select {
		case reloaded <- cfg:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	select {
	case cfg := <-reloaded:
		assert.Equal(t, "debug", cfg.Log.Level)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not fire")
	}
}
