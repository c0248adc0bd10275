package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/coopsim/internal/core"
)

// isolate points the home directory and working directory at empty temp dirs
// so the user and local config files never leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	// Equivalent of t.Chdir (Go 1.24+) for older toolchains.
	dir := t.TempDir()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return home
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	tests := []struct {
		variant string
	}{
		{"wellmixed"},
		{"spatial"},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			want, ok := Default(tt.variant)
			if !ok {
				t.Fatalf("no hardcoded default for %s", tt.variant)
			}
			var got SimConfig
			if err := yaml.Unmarshal(GetDefaultYAML(tt.variant), &got); err != nil {
				t.Fatalf("embedded YAML does not parse: %v", err)
			}
			if got != want {
				t.Errorf("embedded %+v differs from hardcoded %+v", got, want)
			}
		})
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultWellMixedConfig().Params(1).Validate(false); err != nil {
		t.Errorf("well-mixed default invalid: %v", err)
	}
	if err := DefaultSpatialConfig().Params(1).Validate(true); err != nil {
		t.Errorf("spatial default invalid: %v", err)
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	isolate(t)

	cfg, err := Load("spatial", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != DefaultSpatialConfig() {
		t.Errorf("expected embedded default, got %+v", cfg)
	}
}

func TestLoadCustomPathKeepsMissingKeys(t *testing.T) {
	isolate(t)

	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("benefit: 3.5\nsize: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("spatial", path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Benefit != 3.5 || cfg.Size != 20 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Cost != 1 || cfg.Selection != 0.1 || cfg.Generations != 1000 {
		t.Errorf("missing keys should keep defaults: %+v", cfg)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "wellmixed.yaml"), []byte("size: 300\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("wellmixed", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Size != 300 {
		t.Errorf("local config should be used, got size %d", cfg.Size)
	}

	userDir := filepath.Join(home, ".coopsim", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "wellmixed.yaml"), []byte("size: 400\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err = Load("wellmixed", "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Size != 400 {
		t.Errorf("user config should take precedence, got size %d", cfg.Size)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	if _, err := Load("hexagonal", ""); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("unknown variant: expected ErrInvalidParameter, got %v", err)
	}

	if _, err := Load("spatial", filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, core.ErrResourceUnavailable) {
		t.Errorf("missing file: expected ErrResourceUnavailable, got %v", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(bad, []byte("size: [not a number\n"), 0o644)
	if _, err := Load("spatial", bad); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("malformed file: expected ErrInvalidParameter, got %v", err)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset      string
		generations int
		selection   float64
	}{
		{"quick", 100, 0.1},
		{"reference", 1000, 0.1},
		{"long", 10000, 0.1},
		{"strong", 1000, 0.01},
		{"moderate", 1000, 0.1},
		{"weak", 1000, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg := DefaultSpatialConfig()
			if err := ApplyPreset(&cfg, tt.preset); err != nil {
				t.Fatalf("ApplyPreset failed: %v", err)
			}
			if cfg.Generations != tt.generations {
				t.Errorf("generations = %d, expected %d", cfg.Generations, tt.generations)
			}
			if cfg.Selection != tt.selection {
				t.Errorf("selection = %v, expected %v", cfg.Selection, tt.selection)
			}
		})
	}
}

func TestApplyPresetKeepsAtLeastOneGeneration(t *testing.T) {
	cfg := DefaultSpatialConfig()
	cfg.Generations = 5
	if err := ApplyPreset(&cfg, "quick"); err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}
	if cfg.Generations != 1 {
		t.Errorf("generations = %d, expected 1", cfg.Generations)
	}
}

func TestApplyPresetUnknown(t *testing.T) {
	cfg := DefaultSpatialConfig()
	if err := ApplyPreset(&cfg, "extreme"); !errors.Is(err, core.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
	if cfg != DefaultSpatialConfig() {
		t.Error("unknown preset should leave the config untouched")
	}
	if len(PresetNames()) != 6 {
		t.Errorf("expected 6 preset names, got %d", len(PresetNames()))
	}
}
