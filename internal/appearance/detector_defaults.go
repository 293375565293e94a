package appearance

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
)

// DefaultsDetector queries the macOS global AppleInterfaceStyle key.
type DefaultsDetector struct{}

func (DefaultsDetector) Name() string { return "defaults" }

func (DefaultsDetector) Priority() int { return 20 }

func (DefaultsDetector) Available() bool {
	if runtime.GOOS != "darwin" {
		return false
	}
	_, err := exec.LookPath("defaults")
	return err == nil
}

func (DefaultsDetector) Detect(ctx context.Context) (bool, bool) {
	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		// The key is absent while light mode is active, so a failed
		// read is the light answer.
		return false, true
	}
	return parseInterfaceStyle(string(out)), true
}

func parseInterfaceStyle(out string) bool {
	return strings.EqualFold(strings.TrimSpace(out), "dark")
}
