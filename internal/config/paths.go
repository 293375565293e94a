package config

import (
	"os"
	"path/filepath"
)

// Dir returns the shade config directory, honoring XDG_CONFIG_HOME.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "shade")
	}
	return filepath.Join(homeDir(), ".config", "shade")
}

// DataDir returns the shade data directory, honoring XDG_DATA_HOME.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "shade")
	}
	return filepath.Join(homeDir(), ".local", "share", "shade")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
