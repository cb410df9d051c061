package scoring

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWeights_EmptyPathReturnsDefaults(t *testing.T) {
	weights, err := LoadWeights("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if weights.Corporate.HighIntentEvent != "confraternizacao" {
		t.Fatalf("unexpected default corporate high-intent event: %q", weights.Corporate.HighIntentEvent)
	}
	if weights.Personal.Base != 30 {
		t.Fatalf("unexpected default personal base: %d", weights.Personal.Base)
	}
}

func TestLoadWeights_YAMLOverridesOnTopOfDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	override := []byte("personal:\n  base: 50\n  date_bonus: 10\n  addon_bonus: 10\n")
	if err := os.WriteFile(path, override, 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}

	weights, err := LoadWeights(path)
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	if weights.Personal.Base != 50 {
		t.Fatalf("expected overridden base 50, got %d", weights.Personal.Base)
	}
	// Sections absent from the override keep their defaults.
	if weights.Corporate.HighIntentBonus != 10 {
		t.Fatalf("expected default corporate bonus kept, got %d", weights.Corporate.HighIntentBonus)
	}
}

func TestLoadWeights_MissingFileFallsBackToDefaults(t *testing.T) {
	weights, err := LoadWeights("/does/not/exist.yaml")
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if weights.Personal.Base != 30 {
		t.Fatalf("expected defaults on error, got base %d", weights.Personal.Base)
	}
}
