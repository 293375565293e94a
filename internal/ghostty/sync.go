package ghostty

import (
	"fmt"
	"os"
	"regexp"

	"github.com/palettelabs/shade/internal/themes"
)

// themeLinePattern matches an uncommented theme declaration at the start
// of a line. Only the first match is rewritten; commented-out
// declarations are left alone.
var themeLinePattern = regexp.MustCompile(`(?m)^theme\s*=\s*.+$`)

// ThemeLine renders the config line referencing a pair's Ghostty themes.
func ThemeLine(pair *themes.Pair) string {
	return fmt.Sprintf("theme = light:%s,dark:%s", pair.GhosttyLight, pair.GhosttyDark)
}

// SyncConfig rewrites the first theme declaration in the config file to
// reference the pair's light and dark themes. A missing config file or a
// config without a theme line is a no-op. The write is skipped when the
// file already carries the wanted line, leaving the mtime untouched.
func SyncConfig(configPath string, pair *themes.Pair) (bool, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read ghostty config: %w", err)
	}

	loc := themeLinePattern.FindIndex(data)
	if loc == nil {
		return false, nil
	}

	line := ThemeLine(pair)
	if string(data[loc[0]:loc[1]]) == line {
		return false, nil
	}

	updated := make([]byte, 0, len(data)+len(line))
	updated = append(updated, data[:loc[0]]...)
	updated = append(updated, line...)
	updated = append(updated, data[loc[1]:]...)

	mode := os.FileMode(0644)
	if info, err := os.Stat(configPath); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(configPath, updated, mode); err != nil {
		return false, fmt.Errorf("write ghostty config: %w", err)
	}

	return true, nil
}
