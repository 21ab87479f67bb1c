// Package sink provides audio output sinks consuming decoded frame chunks.
package sink

// Sink is an audio output accepting chunks of decoded frames. A sink is
// started and stopped once per playback session; Write blocks until the
// chunk has been handed to the output device.
type Sink interface {
	// Start opens the underlying output stream.
	Start() error

	// Write sends one chunk of frames to the output. Blocks until the
	// device has consumed the chunk.
	Write(chunk [][2]float64) error

	// Stop stops and closes the underlying output stream.
	Stop() error
}
