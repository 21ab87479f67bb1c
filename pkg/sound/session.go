package sound

import (
	"log/slog"
	"math"
	"time"
)

// Play starts streaming the sound to the output sink on a background
// goroutine. loops is the number of full passes: 1 plays once, N plays N
// times, a negative value loops forever. 0 is a no-op. Play is a no-op
// when a session is already active.
func (s *Sound) Play(loops int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	if loops == 0 || s.state != Stopped {
		return nil
	}

	if err := s.out.Start(); err != nil {
		return err
	}

	s.state = Playing
	s.done = make(chan struct{})
	go s.stream(loops, s.done)

	slog.Debug("Playback started", "name", s.name, "loops", loops)
	return nil
}

// stream is the producer loop: it feeds fixed-size chunks from the decoder
// to the sink until stopped or the loop count is exhausted. It runs with
// the state mutex held, releasing it around blocking sink writes and while
// parked on pause.
func (s *Sound) stream(loops int, done chan struct{}) {
	defer close(done)

	read := make([][2]float64, s.chunkSize)
	scaled := make([][2]float64, s.chunkSize)

	s.mu.Lock()
	if err := s.dec.Seek(s.cursor); err != nil {
		slog.Warn("Seek failed at playback start", "error", err)
	}

	for loops != 0 && s.state != Stopped {
		for s.state != Stopped {
			for s.state == Paused {
				s.cond.Wait()
			}
			if s.state == Stopped {
				break
			}

			n, err := s.dec.ReadFrames(read)
			if err != nil {
				slog.Warn("Decode failed", "name", s.name, "error", err)
				loops = 0
				break
			}
			if n == 0 {
				break
			}

			vol := s.volume
			for i := range n {
				scaled[i][0] = read[i][0] * vol
				scaled[i][1] = read[i][1] * vol
			}
			s.cursor += n
			chunk := scaled[:n]

			s.mu.Unlock()
			werr := s.out.Write(chunk)
			s.mu.Lock()

			if werr != nil {
				slog.Warn("Sink write failed", "name", s.name, "error", werr)
				loops = 0
				break
			}
		}

		if err := s.dec.Seek(0); err != nil {
			slog.Warn("Rewind failed", "error", err)
		}
		s.cursor = 0
		if loops > 0 {
			// Negative counts mean loop forever and are never decremented.
			loops--
		}
	}

	s.dec.Seek(0)
	s.cursor = 0
	s.mu.Unlock()

	if err := s.out.Stop(); err != nil {
		slog.Warn("Failed to stop sink", "error", err)
	}

	// The session stays active until the sink has fully stopped, so a
	// concurrent Play cannot start a new sink over this one.
	s.mu.Lock()
	s.state = Stopped
	s.mu.Unlock()

	slog.Debug("Playback finished", "name", s.name)
}

// Pause pauses playback; the producer loop parks until Unpause or Stop.
func (s *Sound) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Playing {
		s.state = Paused
	}
}

// Unpause resumes paused playback from the current cursor position.
func (s *Sound) Unpause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Paused {
		s.state = Playing
		s.cond.Broadcast()
	}
}

// Stop ends playback and blocks until the producer goroutine has exited,
// even when the stream already drained on its own.
func (s *Sound) Stop() {
	s.mu.Lock()
	if s.state.IsActive() {
		s.state = Stopped
		s.cond.Broadcast()
	}
	done := s.done
	s.mu.Unlock()

	// Joining a finished session returns immediately: done is closed.
	if done != nil {
		<-done
	}
}

// Wait blocks until the current playback session ends. Returns
// immediately when nothing has been played.
func (s *Sound) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done != nil {
		<-done
	}
}

// Done returns a channel that is closed when the current playback session
// ends. Returns an already-closed channel when nothing is playing.
func (s *Sound) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.done
}

// State returns the current transport state.
func (s *Sound) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Playing reports whether a playback session is active (includes paused).
func (s *Sound) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsActive()
}

// Paused reports whether playback is paused.
func (s *Sound) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Paused
}

// Volume returns the current volume multiplier.
func (s *Sound) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// SetVolume sets the volume multiplier applied per chunk at write time.
// The value is not clamped.
func (s *Sound) SetVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = volume
}

// Position returns the current playback position as a snapshot.
func (s *Sound) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.positionLocked()
}

func (s *Sound) positionLocked() time.Duration {
	if s.frames == 0 {
		return 0
	}
	return time.Duration(float64(s.duration) * float64(s.cursor) / float64(s.frames))
}

// SetPosition moves the playback cursor. Accepted only for positions in
// [0, duration]; out-of-range values are rejected with ErrOutOfRange and
// leave the cursor unchanged.
func (s *Sound) SetPosition(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if pos < 0 || pos > s.duration {
		return ErrOutOfRange
	}

	frame := int(math.Round(pos.Seconds() * float64(s.sampleRate)))
	frame = min(frame, s.frames)
	if err := s.dec.Seek(frame); err != nil {
		return err
	}
	s.cursor = frame
	return nil
}
