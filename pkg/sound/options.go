package sound

import "github.com/romanin-rf/playsoundsimple/pkg/sink"

// DefaultSoundFonts is the SoundFont used for MIDI rendering when none is
// configured.
const DefaultSoundFonts = "/usr/share/sounds/sf2/FluidR3_GM.sf2"

type options struct {
	volume     float64
	device     int
	out        sink.Sink
	soundFonts string
	transient  bool
}

// Option configures a Sound at open time.
type Option func(*options)

func defaultOptions() options {
	return options{
		volume:     1.0,
		device:     1,
		soundFonts: DefaultSoundFonts,
	}
}

// WithVolume sets the initial playback volume. The value is a plain linear
// multiplier and is not clamped; values outside [0, 1] over- or
// under-amplify.
func WithVolume(volume float64) Option {
	return func(o *options) { o.volume = volume }
}

// WithDevice selects the audio output device index for the default
// PortAudio sink.
func WithDevice(index int) Option {
	return func(o *options) { o.device = index }
}

// WithSink replaces the default PortAudio sink with a custom output sink.
func WithSink(s sink.Sink) Option {
	return func(o *options) { o.out = s }
}

// WithSoundFonts sets the SoundFont file used when rendering MIDI input.
func WithSoundFonts(path string) Option {
	return func(o *options) { o.soundFonts = path }
}

// WithTransient marks the backing file as owned by the Sound; it is
// deleted on Close.
func WithTransient() Option {
	return func(o *options) { o.transient = true }
}
