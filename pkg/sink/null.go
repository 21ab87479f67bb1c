package sink

// Null is a Sink that discards all frames. It stands in for a real output
// device in headless environments.
type Null struct {
	started bool
	frames  int
}

// NewNull creates a Null sink.
func NewNull() *Null {
	return &Null{}
}

func (s *Null) Start() error {
	s.started = true
	return nil
}

func (s *Null) Write(chunk [][2]float64) error {
	s.frames += len(chunk)
	return nil
}

func (s *Null) Stop() error {
	s.started = false
	return nil
}

// FramesWritten returns the total number of frames discarded so far.
func (s *Null) FramesWritten() int {
	return s.frames
}
