// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config contains logger configuration.
type Config struct {
	// Level is the minimum level to emit: trace, debug, info, warn, error.
	// Default: info.
	Level string

	// Format selects the output encoding: "console" or "json".
	// Default: console.
	Format string

	// Output is the destination writer. Default: os.Stderr.
	Output io.Writer
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: os.Stderr,
	}
}

var (
	mu   sync.RWMutex
	base = build(DefaultConfig())
)

// Setup replaces the process-wide base logger. Loggers handed out by
// Component before Setup keep their previous configuration.
func Setup(cfg Config) error {
	if cfg.Level == "" {
		cfg.Level = DefaultConfig().Level
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	logger := build(cfg).Level(level)

	mu.Lock()
	base = logger
	mu.Unlock()
	return nil
}

// Default returns the process-wide base logger.
func Default() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Component returns the base logger stamped with a component name.
func Component(name string) zerolog.Logger {
	return Default().With().Str("component", name).Logger()
}

func build(cfg Config) zerolog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	if cfg.Format != "json" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(output).With().Timestamp().Logger()
}
