package sink

import (
	"fmt"

	"github.com/drgolem/go-portaudio/portaudio"
)

const framesPerBuffer = 512

// PortAudio is a Sink writing interleaved 16-bit PCM to a PortAudio output
// stream in blocking mode. portaudio.Initialize must have been called
// before Start.
type PortAudio struct {
	sampleRate  int
	channels    int
	deviceIndex int
	stream      *portaudio.PaStream
	buf         []byte
}

// NewPortAudio creates a PortAudio sink for the given stream format and
// output device index.
func NewPortAudio(sampleRate, channels, deviceIndex int) *PortAudio {
	return &PortAudio{
		sampleRate:  sampleRate,
		channels:    channels,
		deviceIndex: deviceIndex,
	}
}

// Start opens and starts the PortAudio output stream.
func (s *PortAudio) Start() error {
	// Frames are stereo pairs; the interleave below cannot represent more
	// than two channels.
	if s.channels < 1 || s.channels > 2 {
		return fmt.Errorf("unsupported channel count: %d", s.channels)
	}

	outParams := portaudio.PaStreamParameters{
		DeviceIndex:  s.deviceIndex,
		ChannelCount: s.channels,
		SampleFormat: portaudio.SampleFmtInt16,
	}

	stream, err := portaudio.NewStream(outParams, float64(s.sampleRate))
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	if err := stream.Open(framesPerBuffer); err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}

	if err := stream.StartStream(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start stream: %w", err)
	}

	s.stream = stream
	return nil
}

// Write converts the chunk to interleaved int16 samples and writes it to
// the stream, blocking until the device has consumed it.
func (s *PortAudio) Write(chunk [][2]float64) error {
	if s.stream == nil {
		return fmt.Errorf("sink not started")
	}
	if len(chunk) == 0 {
		return nil
	}

	bytesNeeded := len(chunk) * s.channels * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	buf := s.buf[:bytesNeeded]

	idx := 0
	for _, frame := range chunk {
		for ch := 0; ch < s.channels && ch < 2; ch++ {
			v := sampleToInt16(frame[ch])
			buf[idx] = byte(v)
			buf[idx+1] = byte(v >> 8)
			idx += 2
		}
	}

	return s.stream.Write(len(chunk), buf)
}

// Stop stops and closes the PortAudio stream.
func (s *PortAudio) Stop() error {
	if s.stream == nil {
		return nil
	}
	stream := s.stream
	s.stream = nil

	if err := stream.StopStream(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to stop stream: %w", err)
	}
	if err := stream.Close(); err != nil {
		return fmt.Errorf("failed to close stream: %w", err)
	}
	return nil
}

// sampleToInt16 converts a float64 sample in [-1, 1] to int16, saturating
// out-of-range values produced by over-amplification.
func sampleToInt16(v float64) int16 {
	if v >= 1.0 {
		return 32767
	}
	if v <= -1.0 {
		return -32768
	}
	return int16(v * 32767)
}
