package appearance

import (
	"context"
	"sort"

	"github.com/palettelabs/shade/internal/logging"
	"github.com/palettelabs/shade/internal/models"
	"github.com/rs/zerolog"
)

// Resolver picks the effective appearance mode from a detector chain.
type Resolver struct {
	detectors []Detector
	logger    zerolog.Logger
}

// NewResolver creates a Resolver over the given detectors, ordered by
// descending priority.
func NewResolver(detectors ...Detector) *Resolver {
	sorted := make([]Detector, len(detectors))
	copy(sorted, detectors)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() > sorted[j].Priority()
	})

	return &Resolver{
		detectors: sorted,
		logger:    logging.Component("appearance"),
	}
}

// DefaultResolver returns a Resolver over the standard detector chain.
func DefaultResolver() *Resolver {
	return NewResolver(EnvDetector{}, DefaultsDetector{}, GsettingsDetector{})
}

// Resolve returns the current appearance mode. When no detector
// produces a definite answer the mode is light.
func (r *Resolver) Resolve(ctx context.Context) models.Mode {
	for _, d := range r.detectors {
		if !d.Available() {
			continue
		}

		dark, ok := d.Detect(ctx)
		if !ok {
			r.logger.Debug().Str("detector", d.Name()).Msg("no definite answer")
			continue
		}

		r.logger.Debug().Str("detector", d.Name()).Bool("dark", dark).Msg("appearance resolved")
		return models.ModeFor(dark)
	}

	r.logger.Debug().Msg("no detector answered, defaulting to light")
	return models.ModeLight
}

// IsDark reports whether the resolved mode is dark.
func (r *Resolver) IsDark(ctx context.Context) bool {
	return r.Resolve(ctx).Dark()
}
