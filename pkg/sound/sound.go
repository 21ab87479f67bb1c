// Package sound is a playback facade over audio decoding, tagging and
// output libraries. A Sound owns one decoder, one output sink and the
// transport state of at most one active playback session.
package sound

import (
	"log/slog"
	"math"
	"os"
	"sync"
	"time"

	"github.com/romanin-rf/playsoundsimple/pkg/decoders"
	"github.com/romanin-rf/playsoundsimple/pkg/metadata"
	"github.com/romanin-rf/playsoundsimple/pkg/sink"
	"github.com/romanin-rf/playsoundsimple/pkg/types"
)

// Sound is one openable audio source together with its playback state.
// A Sound must be released with Close, which also deletes the backing
// file when it was created by this package.
type Sound struct {
	name      string
	path      string
	transient bool

	dec  types.Decoder
	meta *metadata.Meta
	out  sink.Sink

	sampleRate int
	channels   int
	frames     int
	duration   time.Duration
	bitrate    int
	bitDepth   int
	chunkSize  int

	mu     sync.Mutex
	cond   *sync.Cond
	state  State
	cursor int
	volume float64
	done   chan struct{}
	closed bool
}

// New opens an audio source. Accepted inputs: a file path (string), raw
// bytes ([]byte), an in-memory or streaming reader (io.Reader), or an open
// *os.File. Bytes and readers are materialized to a temporary file owned
// by the Sound.
func New(src any, opts ...Option) (*Sound, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r, err := resolve(src)
	if err != nil {
		return nil, err
	}
	transient := r.transient || o.transient

	dec, err := decoders.NewDecoder(r.path)
	if err != nil {
		if transient {
			os.Remove(r.path)
		}
		return nil, err
	}

	return newSound(r.name, r.path, transient, dec, o), nil
}

// Open opens an audio file by path.
func Open(path string, opts ...Option) (*Sound, error) {
	return New(path, opts...)
}

// newSound assembles a Sound from an opened decoder, capturing the
// metadata snapshot and derived properties once.
func newSound(name, path string, transient bool, dec types.Decoder, o options) *Sound {
	s := &Sound{
		name:       name,
		path:       path,
		transient:  transient,
		dec:        dec,
		out:        o.out,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frames:     dec.Frames(),
		volume:     o.volume,
	}
	s.cond = sync.NewCond(&s.mu)

	if s.sampleRate > 0 {
		s.duration = time.Duration(float64(s.frames) / float64(s.sampleRate) * float64(time.Second))
	}
	s.chunkSize = s.sampleRate / 10
	if s.chunkSize <= 0 {
		s.chunkSize = 1
	}

	s.meta = metadata.Read(path)
	s.bitrate = metadata.EstimateBitrate(path, s.duration)
	if s.sampleRate > 0 && s.channels > 0 {
		s.bitDepth = int(math.Round(float64(s.bitrate) / float64(s.sampleRate*s.channels)))
	}

	if s.out == nil {
		s.out = sink.NewPortAudio(s.sampleRate, s.channels, o.device)
	}

	slog.Debug("Sound opened",
		"name", name,
		"sample_rate", s.sampleRate,
		"channels", s.channels,
		"frames", s.frames,
		"duration", s.duration,
		"transient", transient)

	return s
}

// Close stops playback, closes the decoder and deletes the backing file
// when it is transient. Safe to call more than once.
func (s *Sound) Close() error {
	s.Stop()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	err := s.dec.Close()
	if s.transient && s.path != "" {
		// Best-effort: a leaked temp file is not worth failing Close over.
		os.Remove(s.path)
	}
	return err
}

// Name returns the resolved file path, or the empty string for in-memory
// sources.
func (s *Sound) Name() string { return s.name }

// SampleRate returns the sample rate in Hz.
func (s *Sound) SampleRate() int { return s.sampleRate }

// Channels returns the number of audio channels.
func (s *Sound) Channels() int { return s.channels }

// Frames returns the total number of frames.
func (s *Sound) Frames() int { return s.frames }

// Duration returns the total stream duration.
func (s *Sound) Duration() time.Duration { return s.duration }

// Bitrate returns the average bitrate in bits per second, or 0 when it
// could not be determined.
func (s *Sound) Bitrate() int { return s.bitrate }

// BitDepth returns the bit depth derived from bitrate, sample rate and
// channel count.
func (s *Sound) BitDepth() int { return s.bitDepth }

// Metadata returns the metadata snapshot captured at open time.
func (s *Sound) Metadata() *metadata.Meta { return s.meta }

// Title returns the title tag, or the empty string.
func (s *Sound) Title() string { return s.meta.Get("title") }

// Artist returns the artist tag, or the empty string.
func (s *Sound) Artist() string { return s.meta.Get("artist") }

// Album returns the album tag, or the empty string.
func (s *Sound) Album() string { return s.meta.Get("album") }

// Year returns the date tag, or the empty string.
func (s *Sound) Year() string { return s.meta.Get("date") }

// Artwork returns the embedded artwork bytes, or nil.
func (s *Sound) Artwork() []byte { return s.meta.Artwork }

// Status returns a point-in-time playback snapshot.
func (s *Sound) Status() types.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return types.Status{
		Name:       s.name,
		SampleRate: s.sampleRate,
		Channels:   s.channels,
		Playing:    s.state.IsActive(),
		Paused:     s.state == Paused,
		Position:   s.positionLocked(),
		Duration:   s.duration,
	}
}
