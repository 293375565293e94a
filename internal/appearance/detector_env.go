package appearance

import (
	"context"
	"os"
	"strings"
)

// EnvAppearance pins the appearance mode, bypassing the OS detectors.
const EnvAppearance = "SHADE_APPEARANCE"

// EnvDetector honors the SHADE_APPEARANCE environment variable. It
// outranks every OS detector.
type EnvDetector struct{}

func (EnvDetector) Name() string { return "env" }

func (EnvDetector) Priority() int { return 100 }

func (EnvDetector) Available() bool {
	return os.Getenv(EnvAppearance) != ""
}

func (EnvDetector) Detect(ctx context.Context) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvAppearance))) {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	return false, false
}
