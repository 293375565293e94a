package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/palettelabs/shade/internal/models"
	"github.com/palettelabs/shade/internal/themes"
)

type fakeHost struct {
	mu       sync.Mutex
	fail     bool
	themes   []string
	palettes []models.Palette
	messages []string
}

func (h *fakeHost) ApplyTheme(ctx context.Context, theme string, palette models.Palette) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.fail {
		return errors.New("host unavailable")
	}
	h.themes = append(h.themes, theme)
	h.palettes = append(h.palettes, palette)
	return nil
}

func (h *fakeHost) DisplayMessage(ctx context.Context, message string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, message)
	return nil
}

func (h *fakeHost) setFail(fail bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fail = fail
}

func (h *fakeHost) applied() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.themes))
	copy(out, h.themes)
	return out
}

func (h *fakeHost) lastTheme() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.themes) == 0 {
		return ""
	}
	return h.themes[len(h.themes)-1]
}

func (h *fakeHost) notifications() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.messages))
	copy(out, h.messages)
	return out
}

func builtinRegistry(t *testing.T) *themes.Registry {
	t.Helper()
	pairs, err := themes.LoadBuiltinPairs()
	if err != nil {
		t.Fatalf("failed to load builtin pairs: %v", err)
	}
	registry, err := themes.NewRegistry(pairs)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return registry
}

func TestApplierDeduplicates(t *testing.T) {
	host := &fakeHost{}
	applier := NewApplier(host)
	registry := builtinRegistry(t)
	pair, err := registry.Get("catppuccin")
	if err != nil {
		t.Fatalf("failed to get pair: %v", err)
	}

	ctx := context.Background()

	variant, applied, err := applier.Apply(ctx, pair, models.ModeLight)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if variant != "catppuccin-latte" {
		t.Errorf("expected variant catppuccin-latte, got %q", variant)
	}
	if !applied {
		t.Error("expected first apply to reach the host")
	}

	_, applied, err = applier.Apply(ctx, pair, models.ModeLight)
	if err != nil {
		t.Fatalf("second apply failed: %v", err)
	}
	if applied {
		t.Error("expected repeat apply to be skipped")
	}

	if got := len(host.applied()); got != 1 {
		t.Errorf("expected 1 host update, got %d", got)
	}
}

func TestApplierAppliesModeChange(t *testing.T) {
	host := &fakeHost{}
	applier := NewApplier(host)
	registry := builtinRegistry(t)
	pair, _ := registry.Get("catppuccin")

	ctx := context.Background()

	if _, _, err := applier.Apply(ctx, pair, models.ModeLight); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if _, _, err := applier.Apply(ctx, pair, models.ModeDark); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	got := host.applied()
	if len(got) != 2 {
		t.Fatalf("expected 2 host updates, got %d", len(got))
	}
	if got[0] != "catppuccin-latte" || got[1] != "catppuccin-mocha" {
		t.Errorf("expected latte then mocha, got %v", got)
	}
}

func TestApplierForceApply(t *testing.T) {
	host := &fakeHost{}
	applier := NewApplier(host)
	registry := builtinRegistry(t)
	pair, _ := registry.Get("catppuccin")

	ctx := context.Background()

	if _, _, err := applier.Apply(ctx, pair, models.ModeLight); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	_, applied, err := applier.ForceApply(ctx, pair, models.ModeLight)
	if err != nil {
		t.Fatalf("force apply failed: %v", err)
	}
	if !applied {
		t.Error("expected force apply to reach the host")
	}
	if got := len(host.applied()); got != 2 {
		t.Errorf("expected 2 host updates, got %d", got)
	}
}

func TestApplierRetriesAfterHostFailure(t *testing.T) {
	host := &fakeHost{fail: true}
	applier := NewApplier(host)
	registry := builtinRegistry(t)
	pair, _ := registry.Get("catppuccin")

	ctx := context.Background()

	if _, _, err := applier.Apply(ctx, pair, models.ModeLight); err == nil {
		t.Fatal("expected apply to fail")
	}
	if got := applier.LastApplied(); got != "" {
		t.Errorf("memo must stay empty after a failed apply, got %q", got)
	}

	host.setFail(false)

	_, applied, err := applier.Apply(ctx, pair, models.ModeLight)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !applied {
		t.Error("expected retry to reach the host")
	}
	if got := applier.LastApplied(); got != "catppuccin-latte" {
		t.Errorf("expected memo catppuccin-latte, got %q", got)
	}
}

func TestApplierReset(t *testing.T) {
	host := &fakeHost{}
	applier := NewApplier(host)
	registry := builtinRegistry(t)
	pair, _ := registry.Get("gruvbox")

	ctx := context.Background()

	if _, _, err := applier.Apply(ctx, pair, models.ModeDark); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	applier.Reset()

	_, applied, err := applier.Apply(ctx, pair, models.ModeDark)
	if err != nil {
		t.Fatalf("apply after reset failed: %v", err)
	}
	if !applied {
		t.Error("expected apply after reset to reach the host")
	}
	if got := len(host.applied()); got != 2 {
		t.Errorf("expected 2 host updates, got %d", got)
	}
}
