package sound

import (
	"fmt"
	"os"

	"github.com/romanin-rf/playsoundsimple/pkg/midisynth"
)

// FromMIDI opens a MIDI source by rendering it to a temporary WAV file
// with the external synthesizer and opening the result as a transient
// Sound. The MThd magic is validated before the synthesizer runs.
func FromMIDI(src any, opts ...Option) (*Sound, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r, err := resolve(src)
	if err != nil {
		return nil, err
	}

	isMIDI, err := midisynth.IsMIDIFile(r.path)
	if err != nil {
		cleanupTransient(r)
		return nil, err
	}
	if !isMIDI {
		cleanupTransient(r)
		return nil, fmt.Errorf("%w: %s", midisynth.ErrNotMIDIFile, r.path)
	}

	wavFile, err := os.CreateTemp("", "playsound-*.wav")
	if err != nil {
		cleanupTransient(r)
		return nil, err
	}
	wavPath := wavFile.Name()
	wavFile.Close()

	if err := midisynth.Render(r.path, wavPath, o.soundFonts); err != nil {
		os.Remove(wavPath)
		cleanupTransient(r)
		return nil, err
	}
	cleanupTransient(r)

	return New(wavPath, append(opts, WithTransient())...)
}

// cleanupTransient removes the intermediate materialized MIDI file, if
// the resolver created one.
func cleanupTransient(r resolved) {
	if r.transient {
		os.Remove(r.path)
	}
}
