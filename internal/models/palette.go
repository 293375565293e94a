package models

import (
	"fmt"
	"regexp"
)

// PaletteSize is the number of indexed ANSI colors in a palette.
const PaletteSize = 16

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Palette is the full color table for one theme variant.
type Palette struct {
	// ANSI holds the 16 indexed terminal colors, normal then bright.
	ANSI [PaletteSize]string `yaml:"ansi" json:"ansi"`

	// Background is the default background color.
	Background string `yaml:"background" json:"background"`

	// Foreground is the default text color.
	Foreground string `yaml:"foreground" json:"foreground"`

	// CursorColor is the cursor fill color.
	CursorColor string `yaml:"cursor_color" json:"cursor_color"`

	// SelectionBackground is the selected-text background color.
	SelectionBackground string `yaml:"selection_background" json:"selection_background"`

	// SelectionForeground is the selected-text foreground color.
	SelectionForeground string `yaml:"selection_foreground" json:"selection_foreground"`
}

// Validate checks that every entry is a well-formed hex color.
func (p *Palette) Validate() error {
	validation := &ValidationErrors{}
	for i, color := range p.ANSI {
		if !hexColorPattern.MatchString(color) {
			validation.AddMessage("ansi", fmt.Sprintf("index %d: invalid hex color %q", i, color))
		}
	}
	named := []struct {
		field string
		color string
	}{
		{"background", p.Background},
		{"foreground", p.Foreground},
		{"cursor_color", p.CursorColor},
		{"selection_background", p.SelectionBackground},
		{"selection_foreground", p.SelectionForeground},
	}
	for _, entry := range named {
		if !hexColorPattern.MatchString(entry.color) {
			validation.AddMessage(entry.field, fmt.Sprintf("invalid hex color %q", entry.color))
		}
	}
	return validation.Err()
}
