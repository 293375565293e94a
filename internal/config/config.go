// Package config loads the shade configuration file and resolves the
// XDG directories used across the tool.
package config

import (
	"strings"
	"time"
)

// DefaultPollInterval is the appearance poll cadence when none is
// configured.
const DefaultPollInterval = 2 * time.Second

// Config is the root configuration for shade.
type Config struct {
	Poll    PollConfig    `mapstructure:"poll"`
	Tmux    TmuxConfig    `mapstructure:"tmux"`
	Ghostty GhosttyConfig `mapstructure:"ghostty"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PollConfig controls the appearance poll loop.
type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// TmuxConfig controls the tmux host integration.
type TmuxConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Notify  bool `mapstructure:"notify"`
}

// GhosttyConfig controls the external config sync.
type GhosttyConfig struct {
	Sync       bool   `mapstructure:"sync"`
	ConfigPath string `mapstructure:"config_path"`
	Reload     bool   `mapstructure:"reload"`
}

// HistoryConfig controls the change journal. An empty Path defers to
// the default data directory.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig controls log output. An empty Format means console on
// a TTY and JSON otherwise.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Poll:    PollConfig{Interval: DefaultPollInterval},
		Tmux:    TmuxConfig{Enabled: true, Notify: true},
		Ghostty: GhosttyConfig{Sync: true, Reload: true},
		History: HistoryConfig{Enabled: true},
		Logging: LoggingConfig{Level: "info"},
	}
}

func normalize(cfg *Config) {
	if cfg.Poll.Interval <= 0 {
		cfg.Poll.Interval = DefaultPollInterval
	}
	if strings.TrimSpace(cfg.Logging.Level) == "" {
		cfg.Logging.Level = "info"
	}
	switch format := strings.ToLower(strings.TrimSpace(cfg.Logging.Format)); format {
	case "console", "json":
		cfg.Logging.Format = format
	default:
		cfg.Logging.Format = ""
	}
	cfg.Ghostty.ConfigPath = strings.TrimSpace(cfg.Ghostty.ConfigPath)
	cfg.History.Path = strings.TrimSpace(cfg.History.Path)
}
