package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from multiple sources.
type Loader struct {
	v          *viper.Viper
	configFile string
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v:         viper.New(),
		envPrefix: "BOTPANEL",
	}
}

// NewLoaderWithViper creates a loader using an existing viper instance,
// allowing integration with CLI flag bindings.
func NewLoaderWithViper(v *viper.Viper) *Loader {
	return &Loader{
		v:         v,
		envPrefix: "BOTPANEL",
	}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// Viper returns the underlying viper instance for flag binding.
func (l *Loader) Viper() *viper.Viper {
	return l.v
}

// Load loads configuration from all sources.
// Precedence (highest to lowest):
// 1. CLI flags (bound via viper.BindPFlag)
// 2. Environment variables (BOTPANEL_*)
// 3. Project config (.botpanel/config.yaml in current directory)
// 4. User config (~/.config/botpanel/config.yaml)
// 5. Defaults
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	l.v.SetEnvPrefix(l.envPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
	} else {
		l.v.SetConfigName("config")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".botpanel")
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(filepath.Join(home, ".config", "botpanel"))
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values. Endpoint timeouts and cache TTLs
// follow the backend's conventions: status polls are short, history and
// stats payloads are larger and slower.
func (l *Loader) setDefaults() {
	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", "auto")

	// Register the keys so environment-only values survive Unmarshal.
	l.v.SetDefault("api.url", "")
	l.v.SetDefault("api.key", "")

	l.v.SetDefault("api.status_timeout", 10*time.Second)
	l.v.SetDefault("api.control_timeout", 15*time.Second)
	l.v.SetDefault("api.settings_timeout", 15*time.Second)
	l.v.SetDefault("api.history_timeout", 20*time.Second)

	l.v.SetDefault("refresh.active", 5*time.Second)
	l.v.SetDefault("refresh.idle", 30*time.Second)

	l.v.SetDefault("cache.history_ttl", 60*time.Second)
	l.v.SetDefault("cache.settings_ttl", 30*time.Second)
	l.v.SetDefault("cache.stats_ttl", 60*time.Second)

	l.v.SetDefault("mock.addr", "127.0.0.1:8750")
	l.v.SetDefault("mock.data_dir", ".botpanel/mock")
	l.v.SetDefault("mock.settings_file", "")
	l.v.SetDefault("mock.profiles", 3)
}

// ConfigFile returns the config file path if one was used.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}
