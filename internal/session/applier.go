// Package session owns the runtime state of a shade instance: the
// active palette pair, the resolved appearance mode, and the poll loop
// that keeps the host terminal in step with the operating system.
package session

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/palettelabs/shade/internal/logging"
	"github.com/palettelabs/shade/internal/models"
	"github.com/palettelabs/shade/internal/themes"
)

// Host applies a named theme and its palette to the host application.
type Host interface {
	ApplyTheme(ctx context.Context, theme string, palette models.Palette) error
}

// Notifier shows a transient message in the host UI.
type Notifier interface {
	DisplayMessage(ctx context.Context, message string) error
}

// Applier pushes pair variants to the host, skipping repeat
// applications of the variant already in place.
type Applier struct {
	host   Host
	logger zerolog.Logger

	mu   sync.Mutex
	last string
}

// NewApplier creates an Applier for the given host.
func NewApplier(host Host) *Applier {
	return &Applier{
		host:   host,
		logger: logging.Component("applier"),
	}
}

// Apply resolves the pair's variant for a mode and pushes it to the
// host when it differs from the last applied variant. It reports the
// variant name and whether the host was actually updated.
func (a *Applier) Apply(ctx context.Context, pair *themes.Pair, mode models.Mode) (string, bool, error) {
	return a.apply(ctx, pair, mode, false)
}

// ForceApply pushes the variant even when it matches the last applied
// one. Used on explicit user switches.
func (a *Applier) ForceApply(ctx context.Context, pair *themes.Pair, mode models.Mode) (string, bool, error) {
	return a.apply(ctx, pair, mode, true)
}

// The memo is only updated after the host accepts the theme, so a
// failed application is retried on the next poll cycle.
func (a *Applier) apply(ctx context.Context, pair *themes.Pair, mode models.Mode, force bool) (string, bool, error) {
	variant := pair.Variant(mode)

	a.mu.Lock()
	if !force && variant == a.last {
		a.mu.Unlock()
		return variant, false, nil
	}
	a.mu.Unlock()

	if err := a.host.ApplyTheme(ctx, variant, pair.PaletteFor(mode)); err != nil {
		return variant, false, err
	}

	a.mu.Lock()
	a.last = variant
	a.mu.Unlock()

	a.logger.Debug().
		Str("variant", variant).
		Str("mode", mode.String()).
		Msg("theme applied")

	return variant, true, nil
}

// LastApplied returns the variant most recently accepted by the host,
// or an empty string when nothing has been applied yet.
func (a *Applier) LastApplied() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

// Reset clears the memo so the next Apply reaches the host.
func (a *Applier) Reset() {
	a.mu.Lock()
	a.last = ""
	a.mu.Unlock()
}
