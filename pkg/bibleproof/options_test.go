package bibleproof

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Match.SubheadThreshold != 0.7 || cfg.Match.PhraseThreshold != 0.6 {
		t.Errorf("unexpected thresholds: %+v", cfg.Match)
	}
	if cfg.Margin.ReferenceFile != "margin_baseline_reference.txt" {
		t.Errorf("ReferenceFile = %q", cfg.Margin.ReferenceFile)
	}
	if cfg.Books.Default != "Genesis" {
		t.Errorf("Books.Default = %q", cfg.Books.Default)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "bibleproof.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bibleproof.toml")
	content := `
[match]
phrase_threshold = 0.5

[margin]
center_inches = 4.0

[books]
default = "Exodus"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Match.PhraseThreshold != 0.5 {
		t.Errorf("PhraseThreshold = %v", cfg.Match.PhraseThreshold)
	}
	if cfg.Match.SubheadThreshold != 0.7 {
		t.Errorf("SubheadThreshold should keep its default, got %v", cfg.Match.SubheadThreshold)
	}
	if cfg.Margin.CenterInches != 4.0 || cfg.Margin.OffsetInches != 1.5 {
		t.Errorf("unexpected margin config: %+v", cfg.Margin)
	}
	if cfg.Books.Default != "Exodus" || cfg.Log.Level != "debug" || cfg.Log.Dir != "logs" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bibleproof.toml")
	if err := os.WriteFile(path, []byte("[match\nphrase_threshold = "), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadConfig(path)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat, got %v", err)
	}
}
