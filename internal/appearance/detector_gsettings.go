package appearance

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
)

// GsettingsDetector queries the GNOME color-scheme preference, falling
// back to the legacy gtk-theme name when the scheme is unset.
type GsettingsDetector struct{}

func (GsettingsDetector) Name() string { return "gsettings" }

func (GsettingsDetector) Priority() int { return 10 }

func (GsettingsDetector) Available() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	_, err := exec.LookPath("gsettings")
	return err == nil
}

func (d GsettingsDetector) Detect(ctx context.Context) (bool, bool) {
	out, err := exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
	if err == nil {
		if dark, ok := parseColorScheme(string(out)); ok {
			return dark, true
		}
	}

	out, err = exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "gtk-theme").Output()
	if err != nil {
		return false, false
	}
	return parseGtkTheme(string(out)), true
}

// parseColorScheme interprets a color-scheme value. The "default" scheme
// expresses no preference, so ok is false and the caller falls through
// to the gtk-theme check.
func parseColorScheme(out string) (dark bool, ok bool) {
	switch strings.Trim(strings.TrimSpace(out), `'"`) {
	case "prefer-dark":
		return true, true
	case "prefer-light":
		return false, true
	}
	return false, false
}

func parseGtkTheme(out string) bool {
	theme := strings.Trim(strings.TrimSpace(out), `'"`)
	return strings.Contains(strings.ToLower(theme), "dark")
}
