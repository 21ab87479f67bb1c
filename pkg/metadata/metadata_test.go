package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestReadMissingFile(t *testing.T) {
	m := Read(filepath.Join(t.TempDir(), "missing.mp3"))

	if m == nil {
		t.Fatal("Read must never return nil")
	}
	if len(m.Fields) != 0 {
		t.Errorf("expected empty fields, got %v", m.Fields)
	}
	if m.Artwork != nil {
		t.Error("expected nil artwork")
	}
	if got := m.Get("title"); got != "" {
		t.Errorf("Get(title) = %q, want empty", got)
	}
}

func TestReadUntaggedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.bin")
	if err := os.WriteFile(path, []byte("not an audio container"), 0644); err != nil {
		t.Fatal(err)
	}

	m := Read(path)
	if len(m.Fields) != 0 {
		t.Errorf("expected empty fields for untagged data, got %v", m.Fields)
	}
}

func TestGetNilReceiver(t *testing.T) {
	var m *Meta
	if got := m.Get("title"); got != "" {
		t.Errorf("nil Meta Get() = %q, want empty", got)
	}
}

func TestEstimateBitrate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.dat")
	if err := os.WriteFile(path, make([]byte, 1000), 0644); err != nil {
		t.Fatal(err)
	}

	if got := EstimateBitrate(path, time.Second); got != 8000 {
		t.Errorf("EstimateBitrate(1000 bytes, 1s) = %d, want 8000", got)
	}
	if got := EstimateBitrate(path, 2*time.Second); got != 4000 {
		t.Errorf("EstimateBitrate(1000 bytes, 2s) = %d, want 4000", got)
	}
}

func TestEstimateBitrateDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audio.dat")
	if err := os.WriteFile(path, make([]byte, 1000), 0644); err != nil {
		t.Fatal(err)
	}

	if got := EstimateBitrate(path, 0); got != 0 {
		t.Errorf("zero duration: got %d, want 0", got)
	}
	if got := EstimateBitrate(path, -time.Second); got != 0 {
		t.Errorf("negative duration: got %d, want 0", got)
	}
	if got := EstimateBitrate(filepath.Join(t.TempDir(), "missing"), time.Second); got != 0 {
		t.Errorf("missing file: got %d, want 0", got)
	}
}
