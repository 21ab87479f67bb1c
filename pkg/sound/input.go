package sound

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// resolved is the outcome of input resolution: a materialized file path, a
// caller-visible name (empty for in-memory sources) and a transient flag
// marking files this package must delete on disposal.
type resolved struct {
	path      string
	name      string
	transient bool
}

// resolve normalizes a heterogeneous input handle into a backing file.
// Paths are canonicalized to absolute form; raw bytes and readers are
// materialized to a temporary file; open files are used in place.
func resolve(src any) (resolved, error) {
	switch v := src.(type) {
	case string:
		abs, err := filepath.Abs(v)
		if err != nil {
			return resolved{}, err
		}
		return resolved{path: abs, name: abs}, nil

	case []byte:
		return materialize(v)

	case *os.File:
		if v == nil {
			return resolved{}, fmt.Errorf("%w: nil file", ErrInvalidInput)
		}
		if _, err := v.Stat(); err != nil {
			return resolved{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		abs, err := filepath.Abs(v.Name())
		if err != nil {
			return resolved{}, err
		}
		return resolved{path: abs, name: abs}, nil

	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return resolved{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return materialize(data)

	default:
		return resolved{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidInput, src)
	}
}

// materialize writes in-memory data to a temporary file, picking the file
// extension by content signature so the decoder factory can dispatch on it.
func materialize(data []byte) (resolved, error) {
	f, err := os.CreateTemp("", "playsound-*"+detectExt(data))
	if err != nil {
		return resolved{}, err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return resolved{}, err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return resolved{}, err
	}
	return resolved{path: f.Name(), transient: true}, nil
}

// detectExt sniffs the container signature of in-memory audio data.
// Unknown data gets a neutral extension and fails later at decoder
// dispatch.
func detectExt(data []byte) string {
	switch {
	case len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return ".wav"
	case len(data) >= 4 && bytes.Equal(data[0:4], []byte("fLaC")):
		return ".flac"
	case len(data) >= 4 && bytes.Equal(data[0:4], []byte("OggS")):
		return ".ogg"
	case len(data) >= 4 && bytes.Equal(data[0:4], []byte("MThd")):
		return ".mid"
	case len(data) >= 3 && bytes.Equal(data[0:3], []byte("ID3")):
		return ".mp3"
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return ".mp3"
	default:
		return ".bin"
	}
}
