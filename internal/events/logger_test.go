package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/palettelabs/shade/internal/models"
)

type fakeRepo struct {
	last *models.Event
}

func (r *fakeRepo) Create(ctx context.Context, event *models.Event) error {
	r.last = event
	return nil
}

func TestLogThemeApplied(t *testing.T) {
	repo := &fakeRepo{}

	err := LogThemeApplied(context.Background(), repo, "everforest", "everforest-dark", models.ModeDark, models.TriggerPoll)
	if err != nil {
		t.Fatalf("LogThemeApplied failed: %v", err)
	}

	if repo.last == nil {
		t.Fatal("expected event to be created")
	}
	if repo.last.Type != models.EventTypeThemeApplied {
		t.Fatalf("unexpected event type: %q", repo.last.Type)
	}
	if repo.last.EntityID != "everforest" {
		t.Fatalf("unexpected entity id: %q", repo.last.EntityID)
	}

	var payload models.ThemeAppliedPayload
	if err := json.Unmarshal(repo.last.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Variant != "everforest-dark" || payload.Trigger != models.TriggerPoll {
		t.Errorf("unexpected payload: %+v", payload)
	}
}

func TestLogThemeAppliedRequiresPair(t *testing.T) {
	if err := LogThemeApplied(context.Background(), &fakeRepo{}, "", "x", models.ModeDark, models.TriggerPoll); err == nil {
		t.Fatal("expected error for missing pair id")
	}
}

func TestLogPairSwitched(t *testing.T) {
	repo := &fakeRepo{}

	if err := LogPairSwitched(context.Background(), repo, "catppuccin", "everforest"); err != nil {
		t.Fatalf("LogPairSwitched failed: %v", err)
	}

	if repo.last.Type != models.EventTypePairSwitched {
		t.Fatalf("unexpected event type: %q", repo.last.Type)
	}
	if repo.last.EntityID != "everforest" {
		t.Fatalf("unexpected entity id: %q", repo.last.EntityID)
	}
}

func TestLogPalettesInstalled(t *testing.T) {
	repo := &fakeRepo{}

	if err := LogPalettesInstalled(context.Background(), repo, []string{"Everforest Dark"}, nil); err != nil {
		t.Fatalf("LogPalettesInstalled failed: %v", err)
	}

	if repo.last.Type != models.EventTypePalettesInstalled {
		t.Fatalf("unexpected event type: %q", repo.last.Type)
	}
	if repo.last.EntityType != models.EntityTypeSystem {
		t.Fatalf("unexpected entity type: %q", repo.last.EntityType)
	}
}

func TestLogConfigSynced(t *testing.T) {
	repo := &fakeRepo{}

	if err := LogConfigSynced(context.Background(), repo, "everforest", "/home/u/.config/ghostty/config", true); err != nil {
		t.Fatalf("LogConfigSynced failed: %v", err)
	}

	var payload models.ConfigSyncedPayload
	if err := json.Unmarshal(repo.last.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if !payload.Updated {
		t.Error("expected updated true")
	}
}

func TestLogEventsRequireRepository(t *testing.T) {
	ctx := context.Background()

	if err := LogThemeApplied(ctx, nil, "p", "v", models.ModeLight, models.TriggerStartup); err == nil {
		t.Error("LogThemeApplied: expected error for nil repository")
	}
	if err := LogPairSwitched(ctx, nil, "a", "b"); err == nil {
		t.Error("LogPairSwitched: expected error for nil repository")
	}
	if err := LogPalettesInstalled(ctx, nil, nil, nil); err == nil {
		t.Error("LogPalettesInstalled: expected error for nil repository")
	}
	if err := LogConfigSynced(ctx, nil, "p", "path", false); err == nil {
		t.Error("LogConfigSynced: expected error for nil repository")
	}
}
