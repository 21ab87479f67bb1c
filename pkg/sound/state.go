package sound

// State represents the playback state of a Sound.
//
// Valid transitions:
//   - Stopped → Playing (via Play with a non-zero loop count)
//   - Playing → Paused  (via Pause)
//   - Paused  → Playing (via Unpause)
//   - Playing → Stopped (via Stop, or when the stream is exhausted)
//   - Paused  → Stopped (via Stop)
//
// Invalid transitions are no-ops.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if playback is active (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
