package appearance

import (
	"context"
	"testing"

	"github.com/palettelabs/shade/internal/models"
)

// fakeDetector implements Detector with fixed answers.
type fakeDetector struct {
	name      string
	priority  int
	available bool
	dark      bool
	ok        bool
}

func (f fakeDetector) Name() string    { return f.name }
func (f fakeDetector) Priority() int   { return f.priority }
func (f fakeDetector) Available() bool { return f.available }

func (f fakeDetector) Detect(ctx context.Context) (bool, bool) {
	return f.dark, f.ok
}

func TestResolverHighestPriorityWins(t *testing.T) {
	// Passed low priority first; the resolver must sort.
	r := NewResolver(
		fakeDetector{name: "low", priority: 1, available: true, dark: false, ok: true},
		fakeDetector{name: "high", priority: 50, available: true, dark: true, ok: true},
	)

	if mode := r.Resolve(context.Background()); mode != models.ModeDark {
		t.Errorf("expected dark from high priority detector, got %s", mode)
	}
}

func TestResolverSkipsUnavailable(t *testing.T) {
	r := NewResolver(
		fakeDetector{name: "high", priority: 50, available: false, dark: true, ok: true},
		fakeDetector{name: "low", priority: 1, available: true, dark: false, ok: true},
	)

	if mode := r.Resolve(context.Background()); mode != models.ModeLight {
		t.Errorf("expected light from available detector, got %s", mode)
	}
}

func TestResolverFallsThroughOnNoAnswer(t *testing.T) {
	r := NewResolver(
		fakeDetector{name: "high", priority: 50, available: true, ok: false},
		fakeDetector{name: "low", priority: 1, available: true, dark: true, ok: true},
	)

	if mode := r.Resolve(context.Background()); mode != models.ModeDark {
		t.Errorf("expected fall-through to low priority detector, got %s", mode)
	}
}

func TestResolverDefaultsToLight(t *testing.T) {
	tests := []struct {
		name      string
		detectors []Detector
	}{
		{name: "no detectors", detectors: nil},
		{
			name: "none available",
			detectors: []Detector{
				fakeDetector{name: "a", priority: 10, available: false, dark: true, ok: true},
			},
		},
		{
			name: "no definite answer",
			detectors: []Detector{
				fakeDetector{name: "a", priority: 10, available: true, ok: false},
				fakeDetector{name: "b", priority: 5, available: true, ok: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.detectors...)
			if mode := r.Resolve(context.Background()); mode != models.ModeLight {
				t.Errorf("expected light fallback, got %s", mode)
			}
		})
	}
}

func TestResolverIsDark(t *testing.T) {
	r := NewResolver(fakeDetector{name: "a", priority: 10, available: true, dark: true, ok: true})

	if !r.IsDark(context.Background()) {
		t.Error("expected IsDark true")
	}
}

func TestEnvDetector(t *testing.T) {
	tests := []struct {
		value string
		dark  bool
		ok    bool
	}{
		{value: "dark", dark: true, ok: true},
		{value: "DARK", dark: true, ok: true},
		{value: "light", dark: false, ok: true},
		{value: " Light ", dark: false, ok: true},
		{value: "auto", dark: false, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(EnvAppearance, tt.value)

			d := EnvDetector{}
			if !d.Available() {
				t.Fatal("expected detector to be available")
			}
			dark, ok := d.Detect(context.Background())
			if dark != tt.dark || ok != tt.ok {
				t.Errorf("Detect() = (%v, %v), want (%v, %v)", dark, ok, tt.dark, tt.ok)
			}
		})
	}
}

func TestEnvDetectorUnsetNotAvailable(t *testing.T) {
	t.Setenv(EnvAppearance, "")

	if (EnvDetector{}).Available() {
		t.Error("expected detector to be unavailable without the variable")
	}
}

func TestParseColorScheme(t *testing.T) {
	tests := []struct {
		out  string
		dark bool
		ok   bool
	}{
		{out: "'prefer-dark'\n", dark: true, ok: true},
		{out: "'prefer-light'\n", dark: false, ok: true},
		{out: "'default'\n", dark: false, ok: false},
		{out: "prefer-dark", dark: true, ok: true},
		{out: "", dark: false, ok: false},
	}

	for _, tt := range tests {
		dark, ok := parseColorScheme(tt.out)
		if dark != tt.dark || ok != tt.ok {
			t.Errorf("parseColorScheme(%q) = (%v, %v), want (%v, %v)", tt.out, dark, ok, tt.dark, tt.ok)
		}
	}
}

func TestParseGtkTheme(t *testing.T) {
	tests := []struct {
		out  string
		dark bool
	}{
		{out: "'Adwaita-dark'\n", dark: true},
		{out: "'Adwaita'\n", dark: false},
		{out: "'Yaru-Dark'\n", dark: true},
		{out: "", dark: false},
	}

	for _, tt := range tests {
		if got := parseGtkTheme(tt.out); got != tt.dark {
			t.Errorf("parseGtkTheme(%q) = %v, want %v", tt.out, got, tt.dark)
		}
	}
}

func TestParseInterfaceStyle(t *testing.T) {
	tests := []struct {
		out  string
		dark bool
	}{
		{out: "Dark\n", dark: true},
		{out: "dark", dark: true},
		{out: "Light\n", dark: false},
		{out: "", dark: false},
	}

	for _, tt := range tests {
		if got := parseInterfaceStyle(tt.out); got != tt.dark {
			t.Errorf("parseInterfaceStyle(%q) = %v, want %v", tt.out, got, tt.dark)
		}
	}
}
