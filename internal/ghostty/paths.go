// Package ghostty keeps the Ghostty terminal configuration in step with
// the active palette pair.
package ghostty

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths represents the candidate Ghostty config file locations.
type ConfigPaths struct {
	// Primary is the XDG config file path.
	Primary string

	// Secondary contains additional config locations (macOS also looks
	// under Application Support).
	Secondary []string
}

// AllPaths returns all candidate paths (primary + secondary).
func (p ConfigPaths) AllPaths() []string {
	paths := make([]string, 0, 1+len(p.Secondary))
	if p.Primary != "" {
		paths = append(paths, p.Primary)
	}
	paths = append(paths, p.Secondary...)
	return paths
}

// ExistingPaths returns only the paths that currently exist on disk.
func (p ConfigPaths) ExistingPaths() []string {
	var existing []string
	for _, path := range p.AllPaths() {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	return existing
}

// DefaultConfigPaths returns the Ghostty config candidates for this host.
func DefaultConfigPaths() ConfigPaths {
	paths := ConfigPaths{
		Primary: filepath.Join(configHome(), "ghostty", "config"),
	}

	if runtime.GOOS == "darwin" {
		paths.Secondary = append(paths.Secondary,
			filepath.Join(homeDir(), "Library", "Application Support", "com.mitchellh.ghostty", "config"))
	}

	return paths
}

// FindConfig returns the first existing Ghostty config file.
func FindConfig() (string, bool) {
	existing := DefaultConfigPaths().ExistingPaths()
	if len(existing) == 0 {
		return "", false
	}
	return existing[0], true
}

// InstallTarget returns the config path whose directory should receive
// installed theme files: the first candidate whose parent directory
// exists, falling back to the primary.
func InstallTarget() string {
	paths := DefaultConfigPaths()
	for _, p := range paths.AllPaths() {
		if _, err := os.Stat(filepath.Dir(p)); err == nil {
			return p
		}
	}
	return paths.Primary
}

// ThemesDir returns the themes directory beside a config file.
func ThemesDir(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "themes")
}

func configHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(homeDir(), ".config")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
