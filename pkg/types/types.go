package types

import "time"

// Decoder is the common interface for all audio decoders (MP3, FLAC, WAV,
// Vorbis). It provides frame-accurate random access over the decoded
// stream: a frame is one sample per channel.
type Decoder interface {
	// SampleRate returns the sample rate in Hz.
	SampleRate() int

	// Channels returns the number of audio channels (1=mono, 2=stereo).
	Channels() int

	// Frames returns the total number of frames in the stream.
	Frames() int

	// Seek positions the decoder at the given frame index.
	Seek(frame int) error

	// ReadFrames decodes up to len(buf) frames into buf as stereo float64
	// pairs in [-1, 1]. Returns the number of frames decoded; 0 with a nil
	// error means the stream is exhausted.
	ReadFrames(buf [][2]float64) (int, error)

	// Close closes the decoder and releases resources.
	Close() error
}

// Status holds a point-in-time snapshot of playback for status reporting.
type Status struct {
	Name       string        // Resolved file name, empty for in-memory sources
	SampleRate int           // Sample rate in Hz
	Channels   int           // Number of channels
	Playing    bool          // Producer loop is running
	Paused     bool          // Producer loop is parked
	Position   time.Duration // Current position within the stream
	Duration   time.Duration // Total stream duration
}
