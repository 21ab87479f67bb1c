// Package config loads CLI configuration from TOML files. The library
// packages take explicit options; this only feeds flag defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/romanin-rf/playsoundsimple/pkg/sound"
)

type Config struct {
	Device     int     `koanf:"device"`      // audio output device index
	Volume     float64 `koanf:"volume"`      // default playback volume
	SoundFonts string  `koanf:"sound_fonts"` // SoundFont file for MIDI rendering
}

// Load reads configuration from the default locations, later files
// overriding earlier ones. Missing files are skipped.
func Load() (*Config, error) {
	return LoadFrom(configPaths()...)
}

// LoadFrom reads configuration from the given paths in order.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Device:     1,
		Volume:     1.0,
		SoundFonts: sound.DefaultSoundFonts,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func configPaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "playsound", "config.toml"))
	}

	// ./config.toml wins over the home config
	paths = append(paths, "config.toml")

	return paths
}
