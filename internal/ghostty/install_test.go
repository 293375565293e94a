package ghostty

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/palettelabs/shade/internal/themes"
)

func TestInstallPalettesWritesMissing(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "ghostty")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configPath := filepath.Join(configDir, "config")

	report, err := InstallPalettes(configPath, []*themes.Pair{everforestPair()})
	if err != nil {
		t.Fatalf("InstallPalettes failed: %v", err)
	}

	if len(report.Written) != 2 {
		t.Fatalf("expected 2 written, got %v", report.Written)
	}
	if len(report.Skipped) != 0 {
		t.Errorf("expected nothing skipped, got %v", report.Skipped)
	}

	for _, name := range []string{"Everforest Dark", "Everforest Light"} {
		path := filepath.Join(ThemesDir(configPath), name)
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected theme file %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Errorf("theme file %s is empty", name)
		}
	}
}

func TestInstallPalettesNeverOverwrites(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "ghostty")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	configPath := filepath.Join(configDir, "config")

	if _, err := InstallPalettes(configPath, []*themes.Pair{everforestPair()}); err != nil {
		t.Fatalf("first install failed: %v", err)
	}

	// User customizes one theme file between installs.
	custom := []byte("background = #000000\n")
	customPath := filepath.Join(ThemesDir(configPath), "Everforest Dark")
	if err := os.WriteFile(customPath, custom, 0644); err != nil {
		t.Fatalf("failed to customize theme: %v", err)
	}

	report, err := InstallPalettes(configPath, []*themes.Pair{everforestPair()})
	if err != nil {
		t.Fatalf("second install failed: %v", err)
	}
	if len(report.Written) != 0 {
		t.Errorf("expected nothing written, got %v", report.Written)
	}
	if len(report.Skipped) != 2 {
		t.Errorf("expected 2 skipped, got %v", report.Skipped)
	}

	data, err := os.ReadFile(customPath)
	if err != nil {
		t.Fatalf("failed to read customized theme: %v", err)
	}
	if string(data) != string(custom) {
		t.Errorf("customized theme was overwritten: %q", data)
	}
}

func TestInstallPalettesMissingConfigDir(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "ghostty", "config")

	report, err := InstallPalettes(configPath, []*themes.Pair{everforestPair()})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(report.Written) != 0 || len(report.Skipped) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
	if _, err := os.Stat(ThemesDir(configPath)); !os.IsNotExist(err) {
		t.Error("expected themes dir not to be created")
	}
}
