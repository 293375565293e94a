// Package themes provides the palette pair registry shared by the host and
// external theme writers.
package themes

import (
	"errors"
	"fmt"

	"github.com/palettelabs/shade/internal/models"
)

var (
	// ErrPairIDRequired is returned when a pair has no id.
	ErrPairIDRequired = errors.New("pair id is required")
	// ErrPairNotFound is returned when a pair is not in the registry.
	ErrPairNotFound = errors.New("pair not found")
	// ErrDuplicatePair is returned when two pairs share an id.
	ErrDuplicatePair = errors.New("duplicate pair id")
)

// PairValidationError describes a validation error in a pair definition.
type PairValidationError struct {
	Pair    string
	Field   string
	Message string
}

func (e *PairValidationError) Error() string {
	if e.Pair != "" {
		return fmt.Sprintf("pair %s: %s: %s", e.Pair, e.Field, e.Message)
	}
	return fmt.Sprintf("pair %s: %s", e.Field, e.Message)
}

// Pair associates a dark and a light variant for both consumers.
type Pair struct {
	ID           string       `yaml:"id"`
	Dark         string       `yaml:"dark"`
	Light        string       `yaml:"light"`
	GhosttyDark  string       `yaml:"ghostty_dark"`
	GhosttyLight string       `yaml:"ghostty_light"`
	Palettes     PairPalettes `yaml:"palettes"`
	Source       string       // file path or "builtin"
}

// PairPalettes holds the color tables for both variants of a pair.
type PairPalettes struct {
	Dark  models.Palette `yaml:"dark"`
	Light models.Palette `yaml:"light"`
}

// Variant returns the host variant name for the given mode.
func (p *Pair) Variant(mode models.Mode) string {
	if mode.Dark() {
		return p.Dark
	}
	return p.Light
}

// PaletteFor returns the color table for the given mode.
func (p *Pair) PaletteFor(mode models.Mode) models.Palette {
	if mode.Dark() {
		return p.Palettes.Dark
	}
	return p.Palettes.Light
}

// GhosttyName returns the Ghostty theme name for the given mode.
func (p *Pair) GhosttyName(mode models.Mode) string {
	if mode.Dark() {
		return p.GhosttyDark
	}
	return p.GhosttyLight
}

// Validate checks that the pair definition is complete.
func (p *Pair) Validate() error {
	if p.ID == "" {
		return ErrPairIDRequired
	}
	required := []struct {
		field string
		value string
	}{
		{"dark", p.Dark},
		{"light", p.Light},
		{"ghostty_dark", p.GhosttyDark},
		{"ghostty_light", p.GhosttyLight},
	}
	for _, entry := range required {
		if entry.value == "" {
			return &PairValidationError{
				Pair:    p.ID,
				Field:   entry.field,
				Message: "variant name is required",
			}
		}
	}
	if err := p.Palettes.Dark.Validate(); err != nil {
		return fmt.Errorf("pair %s: dark palette: %w", p.ID, err)
	}
	if err := p.Palettes.Light.Validate(); err != nil {
		return fmt.Errorf("pair %s: light palette: %w", p.ID, err)
	}
	return nil
}
