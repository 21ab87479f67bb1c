package mp3

import (
	"fmt"
	"os"

	"github.com/gopxl/beep/v2"
	beepmp3 "github.com/gopxl/beep/v2/mp3"
)

// Decoder wraps the beep MP3 decoder.
// Implements types.Decoder.
type Decoder struct {
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
}

// NewDecoder creates a new MP3 decoder
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Open opens and initializes an MP3 file for decoding
func (d *Decoder) Open(fileName string) error {
	f, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("failed to open MP3 file: %w", err)
	}

	streamer, format, err := beepmp3.Decode(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to decode MP3 stream: %w", err)
	}

	d.file = f
	d.streamer = streamer
	d.format = format

	return nil
}

// SampleRate returns the sample rate in Hz
func (d *Decoder) SampleRate() int {
	return int(d.format.SampleRate)
}

// Channels returns the number of audio channels.
// MP3 always decodes to stereo.
func (d *Decoder) Channels() int {
	return d.format.NumChannels
}

// Frames returns the total number of frames in the stream
func (d *Decoder) Frames() int {
	if d.streamer == nil {
		return 0
	}
	return d.streamer.Len()
}

// Seek positions the decoder at the given frame index
func (d *Decoder) Seek(frame int) error {
	if d.streamer == nil {
		return fmt.Errorf("decoder not initialized")
	}
	return d.streamer.Seek(frame)
}

// ReadFrames decodes up to len(buf) frames into buf.
// Returns 0 with a nil error once the stream is exhausted.
func (d *Decoder) ReadFrames(buf [][2]float64) (int, error) {
	if d.streamer == nil {
		return 0, fmt.Errorf("decoder not initialized")
	}

	n, ok := d.streamer.Stream(buf)
	if !ok {
		if err := d.streamer.Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Close closes the decoder and releases resources
func (d *Decoder) Close() error {
	if d.streamer != nil {
		d.streamer.Close()
		d.streamer = nil
	}
	if d.file != nil {
		d.file.Close()
		d.file = nil
	}
	return nil
}
