package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/romanin-rf/playsoundsimple/internal/config"
	"github.com/romanin-rf/playsoundsimple/pkg/sound"

	"github.com/drgolem/go-portaudio/portaudio"
)

var (
	playDeviceIdx  int
	playLoops      int
	playVolume     float64
	playSoundFonts string
	playVerbose    bool
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play <audio_file> [audio_file...]",
	Short: "Play audio files (MP3, FLAC, WAV, Ogg, MIDI)",
	Long: `Play one or more audio files sequentially through PortAudio.

MIDI files are rendered to WAV with FluidSynth before playback; all other
formats are decoded and streamed directly.

Examples:
  # Play a single file
  playsound play music.mp3

  # Play several files on a specific output device
  playsound play -d 0 one.flac two.ogg

  # Repeat a file three times at half volume
  playsound play --loops 3 --volume 0.5 music.wav

  # Render and play a MIDI file with a custom SoundFont
  playsound play --sound-fonts /path/to/fonts.sf2 tune.mid

Supported Formats:
  MP3:  .mp3
  FLAC: .flac, .fla
  WAV:  .wav
  Ogg:  .ogg, .oga
  MIDI: .mid, .midi (requires fluidsynth)`,
	Args: cobra.MinimumNArgs(1),
	Run:  runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().IntVarP(&playDeviceIdx, "device", "d", 1, "Audio output device index")
	playCmd.Flags().IntVarP(&playLoops, "loops", "l", 1, "Playback passes per file (negative loops forever)")
	playCmd.Flags().Float64VarP(&playVolume, "volume", "u", 1.0, "Volume multiplier")
	playCmd.Flags().StringVar(&playSoundFonts, "sound-fonts", "", "SoundFont file for MIDI rendering")
	playCmd.Flags().BoolVarP(&playVerbose, "verbose", "v", false, "Verbose output (debug logging)")
}

func runPlay(cmd *cobra.Command, args []string) {
	logLevel := slog.LevelInfo
	if playVerbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if !cmd.Flags().Changed("device") {
		playDeviceIdx = cfg.Device
	}
	if !cmd.Flags().Changed("volume") {
		playVolume = cfg.Volume
	}
	if playSoundFonts == "" {
		playSoundFonts = cfg.SoundFonts
	}

	files := args

	slog.Info("Initializing PortAudio")
	if err := portaudio.Initialize(); err != nil {
		slog.Error("Failed to initialize PortAudio", "error", err)
		slog.Error("Hint: Make sure PortAudio is installed on your system")
		os.Exit(1)
	}
	defer portaudio.Terminate()

	slog.Info("PortAudio initialized", "version", portaudio.GetVersion())
	slog.Info("Configuration",
		"device_index", playDeviceIdx,
		"loops", playLoops,
		"volume", playVolume,
		"file_count", len(files))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	interrupted := false

	for i, fileName := range files {
		if interrupted {
			break
		}

		slog.Info("Playing file", "index", i+1, "total", len(files), "file", fileName)

		snd, err := openSound(fileName)
		if err != nil {
			slog.Error("Failed to open file", "file", fileName, "error", err)
			continue
		}

		if err := snd.Play(playLoops); err != nil {
			slog.Error("Failed to start playback", "file", fileName, "error", err)
			snd.Close()
			continue
		}

		statusDone := make(chan struct{})
		go monitorStatus(snd, statusDone)

		select {
		case <-snd.Done():
			slog.Info("File completed", "file", fileName)
		case sig := <-sigChan:
			slog.Info("Signal received, stopping", "signal", sig)
			interrupted = true
			snd.Stop()
		}

		close(statusDone)
		if err := snd.Close(); err != nil {
			slog.Error("Failed to close sound", "error", err)
		}
	}

	if interrupted {
		slog.Info("Playback interrupted")
	} else {
		slog.Info("All files completed", "total", len(files))
	}

	slog.Info("Exiting")
}

// openSound opens a file for playback, routing MIDI input through the
// synthesizer bridge.
func openSound(fileName string) (*sound.Sound, error) {
	opts := []sound.Option{
		sound.WithDevice(playDeviceIdx),
		sound.WithVolume(playVolume),
		sound.WithSoundFonts(playSoundFonts),
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == ".mid" || ext == ".midi" {
		return sound.FromMIDI(fileName, opts...)
	}
	return sound.Open(fileName, opts...)
}

// monitorStatus logs playback status every 2 seconds until done is closed.
func monitorStatus(snd *sound.Sound, done chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			st := snd.Status()

			formatStr := fmt.Sprintf("%dHz:%dch", st.SampleRate, st.Channels)

			slog.Info("Playback status",
				"file", filepath.Base(st.Name),
				"format", formatStr,
				"position", formatDuration(st.Position),
				"duration", formatDuration(st.Duration),
				"paused", st.Paused)
		case <-done:
			return
		}
	}
}

// formatDuration formats a duration as hh:mm:ss.msec.
func formatDuration(d time.Duration) string {
	totalMilliseconds := d.Milliseconds()
	hours := totalMilliseconds / 3600000
	minutes := (totalMilliseconds % 3600000) / 60000
	seconds := (totalMilliseconds % 60000) / 1000
	milliseconds := totalMilliseconds % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, milliseconds)
}
