package sound

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	wav "github.com/youpy/go-wav"

	"github.com/romanin-rf/playsoundsimple/pkg/sink"
)

// wavFixture builds an in-memory 16-bit stereo WAV file with the given
// frame count and sample rate.
func wavFixture(t *testing.T, frames, sampleRate int) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := wav.NewWriter(&buf, uint32(frames), 2, uint32(sampleRate), 16)

	data := make([]byte, frames*4)
	for i := 0; i < len(data); i += 4 {
		// Quiet, non-zero samples.
		data[i] = 0x00
		data[i+1] = 0x10
		data[i+2] = 0x00
		data[i+3] = 0xF0
	}
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write WAV fixture: %v", err)
	}
	return buf.Bytes()
}

func wavFixtureFile(t *testing.T, frames, sampleRate int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	if err := os.WriteFile(path, wavFixture(t, frames, sampleRate), 0644); err != nil {
		t.Fatalf("write WAV fixture file: %v", err)
	}
	return path
}

func TestNewFromBytes(t *testing.T) {
	data := wavFixture(t, 4410, 44100)

	snd, err := New(data, WithSink(sink.NewNull()))
	require.NoError(t, err)

	assert.Equal(t, 44100, snd.SampleRate())
	assert.Equal(t, 2, snd.Channels())
	assert.Equal(t, 4410, snd.Frames())
	assert.Equal(t, 100*time.Millisecond, snd.Duration())
	assert.Empty(t, snd.Name(), "in-memory sources have no caller-visible name")

	// Bytes are materialized to a temp file owned by the Sound.
	require.True(t, snd.transient)
	assert.Equal(t, ".wav", filepath.Ext(snd.path))
	_, err = os.Stat(snd.path)
	require.NoError(t, err)

	require.NoError(t, snd.Close())
	_, err = os.Stat(snd.path)
	assert.True(t, os.IsNotExist(err), "Close must delete the materialized file")
}

func TestNewFromReader(t *testing.T) {
	data := wavFixture(t, 441, 44100)

	snd, err := New(bytes.NewReader(data), WithSink(sink.NewNull()))
	require.NoError(t, err)
	defer snd.Close()

	assert.Equal(t, 441, snd.Frames())
	assert.True(t, snd.transient)
}

func TestOpenPath(t *testing.T) {
	path := wavFixtureFile(t, 441, 44100)

	snd, err := Open(path, WithSink(sink.NewNull()))
	require.NoError(t, err)

	abs, _ := filepath.Abs(path)
	assert.Equal(t, abs, snd.Name())
	assert.False(t, snd.transient)

	require.NoError(t, snd.Close())
	_, err = os.Stat(path)
	assert.NoError(t, err, "Close must not delete caller-owned files")
}

func TestNewFromOpenFile(t *testing.T) {
	path := wavFixtureFile(t, 441, 44100)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	snd, err := New(f, WithSink(sink.NewNull()))
	require.NoError(t, err)
	defer snd.Close()

	assert.Equal(t, 441, snd.Frames())
	assert.False(t, snd.transient)
}

func TestNewFromClosedFile(t *testing.T) {
	path := wavFixtureFile(t, 441, 44100)

	f, err := os.Open(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = New(f, WithSink(sink.NewNull()))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewFromNilFile(t *testing.T) {
	_, err := New((*os.File)(nil), WithSink(sink.NewNull()))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewUnsupportedType(t *testing.T) {
	_, err := New(42, WithSink(sink.NewNull()))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewDecodeFailureRemovesOwnedFile(t *testing.T) {
	// A caller-provided file marked transient is owned by the Sound even
	// when opening fails.
	path := filepath.Join(t.TempDir(), "broken.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF not really a wav"), 0644))

	_, err := New(path, WithTransient(), WithSink(sink.NewNull()))
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "failed open must delete the file it owns")
}

func TestNewDecodeFailureKeepsCallerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF not really a wav"), 0644))

	_, err := New(path, WithSink(sink.NewNull()))
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "failed open must not delete caller-owned files")
}

func TestNewFromUnrecognizedBytes(t *testing.T) {
	_, err := New([]byte("definitely not audio data"), WithSink(sink.NewNull()))
	assert.Error(t, err)
}

func TestDetectExt(t *testing.T) {
	wavData := append([]byte("RIFF\x00\x00\x00\x00WAVE"), 0)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"wav", wavData, ".wav"},
		{"flac", []byte("fLaC\x00\x00\x00\x22"), ".flac"},
		{"ogg", []byte("OggS\x00\x02"), ".ogg"},
		{"midi", []byte("MThd\x00\x00\x00\x06"), ".mid"},
		{"mp3 id3", []byte("ID3\x04\x00"), ".mp3"},
		{"mp3 sync", []byte{0xFF, 0xFB, 0x90, 0x00}, ".mp3"},
		{"riff but not wave", []byte("RIFF\x00\x00\x00\x00AVI "), ".bin"},
		{"garbage", []byte("hello world"), ".bin"},
		{"empty", nil, ".bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectExt(tt.data); got != tt.want {
				t.Errorf("detectExt() = %q, want %q", got, tt.want)
			}
		})
	}
}
