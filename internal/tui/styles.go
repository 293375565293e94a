// Package tui implements the interactive palette pair picker.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palettelabs/shade/internal/models"
)

// Styles contains the lipgloss styles used by the picker chrome.
type Styles struct {
	Title  lipgloss.Style
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Cursor lipgloss.Style
	Active lipgloss.Style
}

// DefaultStyles returns the picker styles.
func DefaultStyles() Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true),
		Text:   lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Faint(true),
		Cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7AA2F7")),
		Active: lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950")),
	}
}

// Swatch renders a compact strip of colored cells for a palette.
func Swatch(p models.Palette) string {
	var b strings.Builder
	for _, hex := range swatchColors(p) {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  "))
	}
	return b.String()
}

// The strip shows the background, six accent colors, and the
// foreground, which is enough to tell pairs apart at a glance.
func swatchColors(p models.Palette) []string {
	return []string{
		p.Background,
		p.ANSI[1],
		p.ANSI[2],
		p.ANSI[3],
		p.ANSI[4],
		p.ANSI[5],
		p.ANSI[6],
		p.Foreground,
	}
}
