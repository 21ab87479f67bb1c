package decoders

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/romanin-rf/playsoundsimple/pkg/decoders/flac"
	"github.com/romanin-rf/playsoundsimple/pkg/decoders/mp3"
	"github.com/romanin-rf/playsoundsimple/pkg/decoders/vorbis"
	"github.com/romanin-rf/playsoundsimple/pkg/decoders/wav"
	"github.com/romanin-rf/playsoundsimple/pkg/types"
)

// openDecoder is a types.Decoder that can be bound to a file.
type openDecoder interface {
	types.Decoder
	Open(fileName string) error
}

// NewDecoder creates and opens the appropriate decoder based on file extension.
// Supports .mp3, .flac, .fla, .wav, .ogg and .oga formats.
// Returns an opened decoder ready for use, or an error if the format is
// unsupported or the file cannot be opened.
func NewDecoder(fileName string) (types.Decoder, error) {
	ext := strings.ToLower(filepath.Ext(fileName))

	var decoder openDecoder

	switch ext {
	case ".mp3":
		decoder = mp3.NewDecoder()
	case ".flac", ".fla":
		decoder = flac.NewDecoder()
	case ".wav":
		decoder = wav.NewDecoder()
	case ".ogg", ".oga":
		decoder = vorbis.NewDecoder()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .mp3, .flac, .fla, .wav, .ogg)", ext)
	}

	if err := decoder.Open(fileName); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", fileName, err)
	}

	return decoder, nil
}
