// Package config loads panel configuration from flags, environment, and
// config files.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds all panel configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Log     LogConfig     `mapstructure:"log"`
	Refresh RefreshConfig `mapstructure:"refresh"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Mock    MockConfig    `mapstructure:"mock"`
}

// APIConfig configures the backend connection. URL is mandatory for every
// command that talks to the bot; Key is the shared secret sent as X-API-Key.
type APIConfig struct {
	URL string `mapstructure:"url"`
	Key string `mapstructure:"key"`

	StatusTimeout   time.Duration `mapstructure:"status_timeout"`
	ControlTimeout  time.Duration `mapstructure:"control_timeout"`
	SettingsTimeout time.Duration `mapstructure:"settings_timeout"`
	HistoryTimeout  time.Duration `mapstructure:"history_timeout"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RefreshConfig controls page polling cadence. Active applies while the bot
// is running, starting, or stopping; Idle otherwise.
type RefreshConfig struct {
	Active time.Duration `mapstructure:"active"`
	Idle   time.Duration `mapstructure:"idle"`
}

// CacheConfig sets the TTLs for memoized fetches.
type CacheConfig struct {
	HistoryTTL  time.Duration `mapstructure:"history_ttl"`
	SettingsTTL time.Duration `mapstructure:"settings_ttl"`
	StatsTTL    time.Duration `mapstructure:"stats_ttl"`
}

// MockConfig configures the development mock backend.
type MockConfig struct {
	Addr         string `mapstructure:"addr"`
	DataDir      string `mapstructure:"data_dir"`
	SettingsFile string `mapstructure:"settings_file"`
	Profiles     int    `mapstructure:"profiles"`
}

// ErrMissingURL is the one fatal configuration error: without a backend URL
// the panel has nothing to talk to.
var ErrMissingURL = errors.New("api.url is not configured (set BOTPANEL_API_URL or api.url in the config file)")

// ValidateAPI checks that the backend connection settings are usable.
func (c *Config) ValidateAPI() error {
	if c.API.URL == "" {
		return ErrMissingURL
	}
	u, err := url.Parse(c.API.URL)
	if err != nil {
		return fmt.Errorf("invalid api.url %q: %w", c.API.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.url %q must use http or https", c.API.URL)
	}
	return nil
}
