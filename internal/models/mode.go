package models

import "strings"

// Mode is the OS appearance state.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Dark reports whether the mode is dark.
func (m Mode) Dark() bool {
	return m == ModeDark
}

// String returns the mode name, defaulting to light for unset values.
func (m Mode) String() string {
	if m == "" {
		return string(ModeLight)
	}
	return string(m)
}

// ModeFor maps a boolean dark flag to a Mode.
func ModeFor(dark bool) Mode {
	if dark {
		return ModeDark
	}
	return ModeLight
}

// ParseMode converts a string to a Mode, returning false for unknown values.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ModeLight, true
	case "dark":
		return ModeDark, true
	default:
		return "", false
	}
}
