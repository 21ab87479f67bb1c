package sink

import "testing"

func TestNullSinkCountsFrames(t *testing.T) {
	s := NewNull()

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Write(make([][2]float64, 100)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Write(make([][2]float64, 50)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	if got := s.FramesWritten(); got != 150 {
		t.Errorf("FramesWritten() = %d, want 150", got)
	}
}

func TestSampleToInt16(t *testing.T) {
	tests := []struct {
		in   float64
		want int16
	}{
		{0.0, 0},
		{1.0, 32767},
		{-1.0, -32768},
		{0.5, 16383},
		{2.5, 32767},   // saturates
		{-2.5, -32768}, // saturates
	}

	for _, tt := range tests {
		if got := sampleToInt16(tt.in); got != tt.want {
			t.Errorf("sampleToInt16(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestPortAudioRejectsUnsupportedChannels(t *testing.T) {
	for _, channels := range []int{0, -1, 3, 6} {
		s := NewPortAudio(44100, channels, 1)
		if err := s.Start(); err == nil {
			t.Errorf("Start with %d channels should fail", channels)
		}
	}
}

func TestPortAudioWriteBeforeStart(t *testing.T) {
	s := NewPortAudio(44100, 2, 1)
	if err := s.Write(make([][2]float64, 10)); err == nil {
		t.Error("Write before Start should fail")
	}
}

func TestPortAudioStopBeforeStart(t *testing.T) {
	s := NewPortAudio(44100, 2, 1)
	if err := s.Stop(); err != nil {
		t.Errorf("Stop before Start should be a no-op, got %v", err)
	}
}
