package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadByNameBuiltins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dark, err := LoadByName("dark")
	if err != nil {
		t.Fatalf("LoadByName(dark) error = %v", err)
	}
	if dark.Name != "dark" {
		t.Errorf("Name = %q, want %q", dark.Name, "dark")
	}

	light, err := LoadByName("light")
	if err != nil {
		t.Fatalf("LoadByName(light) error = %v", err)
	}
	if light.Accent == dark.Accent {
		t.Error("light and dark share an accent color")
	}

	// Empty name falls back to the default theme.
	def, err := LoadByName("")
	if err != nil {
		t.Fatalf("LoadByName(\"\") error = %v", err)
	}
	if def.Accent != Default().Accent {
		t.Errorf("default accent = %q, want %q", def.Accent, Default().Accent)
	}
}

func TestLoadByNameUnknown(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := LoadByName("solarized-disco"); err == nil {
		t.Error("LoadByName(unknown) error = nil, want error")
	}
}

func TestSaveThenLoadByName(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	custom := Dark()
	custom.Accent = "#FF00FF"
	if err := Save("neon", custom); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	themesDir, err := ThemesDir()
	if err != nil {
		t.Fatalf("ThemesDir() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(themesDir, "neon.json")); err != nil {
		t.Fatalf("theme file not written: %v", err)
	}

	got, err := LoadByName("neon")
	if err != nil {
		t.Fatalf("LoadByName(neon) error = %v", err)
	}
	if got.Accent != "#FF00FF" {
		t.Errorf("Accent = %q, want %q", got.Accent, "#FF00FF")
	}
	// Fields the file does not override keep the dark defaults.
	if got.UserLabel != Dark().UserLabel {
		t.Errorf("UserLabel = %+v, want dark default %+v", got.UserLabel, Dark().UserLabel)
	}
}

func TestSaveOverridesBuiltin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	custom := Dark()
	custom.Accent = "#123456"
	if err := Save("dark", custom); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := LoadByName("dark")
	if err != nil {
		t.Fatalf("LoadByName(dark) error = %v", err)
	}
	if got.Accent != "#123456" {
		t.Errorf("Accent = %q, want user override %q", got.Accent, "#123456")
	}
}
