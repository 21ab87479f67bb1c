// Package midisynth renders MIDI files to WAV by invoking the external
// FluidSynth synthesizer.
package midisynth

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// midiMagic is the 4-byte header chunk signature of standard MIDI files.
var midiMagic = []byte("MThd")

const synthBinary = "fluidsynth"

var (
	// ErrNotMIDIFile indicates the input does not carry the MThd signature.
	ErrNotMIDIFile = errors.New("not a MIDI file")

	// ErrSynthesizerNotFound indicates the fluidsynth binary is not installed.
	ErrSynthesizerNotFound = errors.New("fluidsynth not found")

	// ErrSynthesizerFailed indicates fluidsynth ran but reported failure.
	ErrSynthesizerFailed = errors.New("fluidsynth failed")
)

// IsMIDIFile reports whether the file starts with the MIDI header magic.
func IsMIDIFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	magic := make([]byte, 4)
	if _, err := f.Read(magic); err != nil {
		return false, nil
	}
	return bytes.Equal(magic, midiMagic), nil
}

// Available reports whether the external synthesizer can be invoked.
func Available() bool {
	_, err := exec.LookPath(synthBinary)
	return err == nil
}

// Render renders a MIDI file to a WAV file using the given SoundFont.
// The MThd magic is validated before the synthesizer is invoked.
func Render(midiPath, wavPath, soundFonts string) error {
	isMIDI, err := IsMIDIFile(midiPath)
	if err != nil {
		return err
	}
	if !isMIDI {
		return fmt.Errorf("%w: %s", ErrNotMIDIFile, midiPath)
	}

	bin, err := exec.LookPath(synthBinary)
	if err != nil {
		return ErrSynthesizerNotFound
	}

	slog.Debug("Rendering MIDI",
		"input", midiPath,
		"output", wavPath,
		"soundfonts", soundFonts)

	cmd := exec.Command(bin, "-ni", soundFonts, midiPath, "-F", wavPath, "-r", "44100")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: %s", ErrSynthesizerFailed, firstLine(out))
	}

	return nil
}

func firstLine(out []byte) string {
	if i := bytes.IndexByte(out, '\n'); i >= 0 {
		out = out[:i]
	}
	return string(bytes.TrimSpace(out))
}
