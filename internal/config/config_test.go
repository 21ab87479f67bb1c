package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/romanin-rf/playsoundsimple/pkg/sound"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom()
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Device != 1 {
		t.Errorf("Device = %d, want 1", cfg.Device)
	}
	if cfg.Volume != 1.0 {
		t.Errorf("Volume = %v, want 1.0", cfg.Volume)
	}
	if cfg.SoundFonts != sound.DefaultSoundFonts {
		t.Errorf("SoundFonts = %q, want default", cfg.SoundFonts)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, "config.toml", `
device = 3
volume = 0.5
sound_fonts = "/opt/fonts/custom.sf2"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Device != 3 {
		t.Errorf("Device = %d, want 3", cfg.Device)
	}
	if cfg.Volume != 0.5 {
		t.Errorf("Volume = %v, want 0.5", cfg.Volume)
	}
	if cfg.SoundFonts != "/opt/fonts/custom.sf2" {
		t.Errorf("SoundFonts = %q", cfg.SoundFonts)
	}
}

func TestLoadFromPartialFile(t *testing.T) {
	path := writeConfig(t, "config.toml", `volume = 0.25`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Volume != 0.25 {
		t.Errorf("Volume = %v, want 0.25", cfg.Volume)
	}
	if cfg.Device != 1 {
		t.Errorf("Device = %d, want default 1", cfg.Device)
	}
}

func TestLoadFromLaterFileWins(t *testing.T) {
	first := writeConfig(t, "first.toml", `device = 2`)
	second := writeConfig(t, "second.toml", `device = 5`)

	cfg, err := LoadFrom(first, second)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.Device != 5 {
		t.Errorf("Device = %d, want 5 (later file overrides)", cfg.Device)
	}
}

func TestLoadFromMissingFileSkipped(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, err := LoadFrom(missing)
	if err != nil {
		t.Fatalf("missing files must be skipped, got %v", err)
	}
	if cfg.Device != 1 {
		t.Errorf("Device = %d, want default 1", cfg.Device)
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := writeConfig(t, "bad.toml", `device = [not toml`)

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error for invalid TOML")
	}
}
