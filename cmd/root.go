package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "playsound",
	Short: "Simple audio playback from the command line",
	Long: `playsound - A simple audio player built on a playback wrapper library.

Features:
  - MP3, FLAC, WAV and Ogg Vorbis playback via PortAudio
  - MIDI playback through the external FluidSynth synthesizer
  - Transport controls with loop counts and volume
  - Metadata and embedded artwork inspection
  - Sample rate conversion and WAV export

Commands:
  - play: Play one or more audio files sequentially
  - info: Show format, duration and tag metadata of a file
  - export: Convert an audio file to WAV at a new sample rate`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
