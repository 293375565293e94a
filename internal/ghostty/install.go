package ghostty

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/palettelabs/shade/internal/models"
	"github.com/palettelabs/shade/internal/themes"
)

// InstallReport lists the theme files written and skipped by an install.
type InstallReport struct {
	// Written holds the theme names newly written.
	Written []string

	// Skipped holds the theme names left alone because a file already
	// existed.
	Skipped []string
}

// InstallPalettes writes the theme file for every pair variant into the
// themes directory beside the config file. An existing file is never
// overwritten, so user edits survive reinstalls. A missing Ghostty
// config directory is a no-op.
func InstallPalettes(configPath string, pairs []*themes.Pair) (InstallReport, error) {
	var report InstallReport

	configDir := filepath.Dir(configPath)
	if _, err := os.Stat(configDir); err != nil {
		if os.IsNotExist(err) {
			return report, nil
		}
		return report, fmt.Errorf("stat ghostty config dir: %w", err)
	}

	themesDir := ThemesDir(configPath)
	if err := os.MkdirAll(themesDir, 0755); err != nil {
		return report, fmt.Errorf("create ghostty themes dir: %w", err)
	}

	for _, pair := range pairs {
		for _, mode := range []models.Mode{models.ModeDark, models.ModeLight} {
			name := pair.GhosttyName(mode)
			path := filepath.Join(themesDir, name)

			if _, err := os.Stat(path); err == nil {
				report.Skipped = append(report.Skipped, name)
				continue
			}

			content, err := RenderTheme(pair.PaletteFor(mode))
			if err != nil {
				return report, err
			}
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				return report, fmt.Errorf("write ghostty theme %s: %w", name, err)
			}

			report.Written = append(report.Written, name)
		}
	}

	return report, nil
}
