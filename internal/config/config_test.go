package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "dark")
	}
	if cfg.Wrap != "wrap" {
		t.Errorf("Wrap = %q, want %q", cfg.Wrap, "wrap")
	}
	if cfg.CollapseThreshold != 5 {
		t.Errorf("CollapseThreshold = %d, want 5", cfg.CollapseThreshold)
	}
	if cfg.RenderCacheCapacity != 1000 {
		t.Errorf("RenderCacheCapacity = %d, want 1000", cfg.RenderCacheCapacity)
	}
}

func TestLoadMissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("loadFrom() on missing file = %+v, want defaults", cfg)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("defaults not persisted: %v", err)
	}
	if !strings.Contains(string(data), `theme = "dark"`) {
		t.Errorf("persisted defaults are not TOML:\n%s", data)
	}
}

func TestLoadFillsMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("theme = \"light\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want %q", cfg.Theme, "light")
	}
	// Keys absent from the file keep their defaults.
	if cfg.RenderCacheCapacity != 1000 {
		t.Errorf("RenderCacheCapacity = %d, want 1000", cfg.RenderCacheCapacity)
	}
	if cfg.CollapseThreshold != 5 {
		t.Errorf("CollapseThreshold = %d, want 5", cfg.CollapseThreshold)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("wrap = \"sideways\"\ncollapse_threshold = -3\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.Wrap != "wrap" {
		t.Errorf("Wrap = %q, want fallback %q", cfg.Wrap, "wrap")
	}
	if cfg.CollapseThreshold != 5 {
		t.Errorf("CollapseThreshold = %d, want fallback 5", cfg.CollapseThreshold)
	}
}

func TestFollowDebounceDuration(t *testing.T) {
	tests := []struct {
		debounce string
		want     time.Duration
	}{
		{"500ms", 500 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"", 200 * time.Millisecond},
		{"garbage", 200 * time.Millisecond},
	}
	for _, tt := range tests {
		cfg := FollowConfig{Debounce: tt.debounce}
		if got := cfg.DebounceDuration(); got != tt.want {
			t.Errorf("DebounceDuration(%q) = %v, want %v", tt.debounce, got, tt.want)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	want := Config{
		Theme:               "light",
		Wrap:                "nowrap",
		CollapseThreshold:   8,
		RenderCacheCapacity: 500,
		Follow:              FollowConfig{Debounce: "1s"},
	}

	if err := saveTo(path, want); err != nil {
		t.Fatalf("saveTo() error = %v", err)
	}
	got, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if got != want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}
