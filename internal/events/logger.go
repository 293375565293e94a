// Package events provides helper functions for recording shade journal events.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/palettelabs/shade/internal/models"
)

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogThemeApplied records a theme application for a pair.
func LogThemeApplied(ctx context.Context, repo Repository, pairID, variant string, mode models.Mode, trigger models.Trigger) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if pairID == "" {
		return fmt.Errorf("pair id is required")
	}

	payload, err := json.Marshal(models.ThemeAppliedPayload{
		Pair:    pairID,
		Variant: variant,
		Mode:    mode,
		Trigger: trigger,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal theme payload: %w", err)
	}

	event := &models.Event{
		Type:       models.EventTypeThemeApplied,
		EntityType: models.EntityTypePair,
		EntityID:   pairID,
		Payload:    payload,
	}

	return repo.Create(ctx, event)
}

// LogPairSwitched records a user-initiated pair change.
func LogPairSwitched(ctx context.Context, repo Repository, oldPair, newPair string) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if newPair == "" {
		return fmt.Errorf("new pair id is required")
	}

	payload, err := json.Marshal(models.PairSwitchedPayload{
		OldPair: oldPair,
		NewPair: newPair,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal switch payload: %w", err)
	}

	event := &models.Event{
		Type:       models.EventTypePairSwitched,
		EntityType: models.EntityTypePair,
		EntityID:   newPair,
		Payload:    payload,
	}

	return repo.Create(ctx, event)
}

// LogPalettesInstalled records a Ghostty theme install run.
func LogPalettesInstalled(ctx context.Context, repo Repository, written, skipped []string) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}

	payload, err := json.Marshal(models.PalettesInstalledPayload{
		Written: written,
		Skipped: skipped,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal install payload: %w", err)
	}

	event := &models.Event{
		Type:       models.EventTypePalettesInstalled,
		EntityType: models.EntityTypeSystem,
		EntityID:   "ghostty",
		Payload:    payload,
	}

	return repo.Create(ctx, event)
}

// LogConfigSynced records a Ghostty config rewrite.
func LogConfigSynced(ctx context.Context, repo Repository, pairID, path string, updated bool) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if pairID == "" {
		return fmt.Errorf("pair id is required")
	}

	payload, err := json.Marshal(models.ConfigSyncedPayload{
		Path:    path,
		Updated: updated,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sync payload: %w", err)
	}

	event := &models.Event{
		Type:       models.EventTypeConfigSynced,
		EntityType: models.EntityTypePair,
		EntityID:   pairID,
		Payload:    payload,
	}

	return repo.Create(ctx, event)
}
