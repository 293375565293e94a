package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader reads the configuration file and environment.
type Loader struct {
	viper *viper.Viper
}

// NewLoader builds a viper instance rooted at the shade config
// directory, with SHADE_ environment overrides.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())

	v.SetEnvPrefix("SHADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{viper: v}
}

// SetFile pins the loader to an explicit config file. A missing
// explicit file is an error, unlike the default search path.
func (l *Loader) SetFile(path string) {
	l.viper.SetConfigFile(path)
}

// Load reads config.yaml and the environment, falling back to defaults
// when no file exists.
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	if err := l.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := l.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", l.viper.ConfigFileUsed(), err)
	}

	normalize(cfg)
	return cfg, nil
}

// FileUsed returns the path of the config file that was read, or an
// empty string when defaults were used.
func (l *Loader) FileUsed() string {
	return l.viper.ConfigFileUsed()
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.viper.SetDefault("poll.interval", defaults.Poll.Interval)
	l.viper.SetDefault("tmux.enabled", defaults.Tmux.Enabled)
	l.viper.SetDefault("tmux.notify", defaults.Tmux.Notify)
	l.viper.SetDefault("ghostty.sync", defaults.Ghostty.Sync)
	l.viper.SetDefault("ghostty.config_path", defaults.Ghostty.ConfigPath)
	l.viper.SetDefault("ghostty.reload", defaults.Ghostty.Reload)
	l.viper.SetDefault("history.enabled", defaults.History.Enabled)
	l.viper.SetDefault("history.path", defaults.History.Path)
	l.viper.SetDefault("logging.level", defaults.Logging.Level)
	l.viper.SetDefault("logging.format", defaults.Logging.Format)
}

// Load reads the configuration from the default search path.
func Load() (*Config, error) {
	return NewLoader().Load()
}

// LoadFile reads the configuration from an explicit path.
func LoadFile(path string) (*Config, error) {
	loader := NewLoader()
	loader.SetFile(path)
	return loader.Load()
}
