package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/romanin-rf/playsoundsimple/pkg/sink"
	"github.com/romanin-rf/playsoundsimple/pkg/sound"
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info <audio_file>",
	Short: "Show format, duration and tag metadata of an audio file",
	Long: `Inspect an audio file without playing it.

Prints the decoded stream properties (sample rate, channels, frame count,
duration, bitrate, bit depth), all readable tag fields and the size of the
embedded artwork, if any.

Examples:
  playsound info music.mp3
  playsound info album/track01.flac`,
	Args: cobra.ExactArgs(1),
	Run:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	fileName := args[0]

	// The null sink keeps info usable without an audio device.
	snd, err := sound.Open(fileName, sound.WithSink(sink.NewNull()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open %s: %v\n", fileName, err)
		os.Exit(1)
	}
	defer snd.Close()

	fmt.Printf("File:        %s\n", snd.Name())
	fmt.Printf("Sample rate: %d Hz\n", snd.SampleRate())
	fmt.Printf("Channels:    %d\n", snd.Channels())
	fmt.Printf("Frames:      %d\n", snd.Frames())
	fmt.Printf("Duration:    %s\n", formatDuration(snd.Duration()))
	fmt.Printf("Bitrate:     %d bit/s\n", snd.Bitrate())
	fmt.Printf("Bit depth:   %d\n", snd.BitDepth())

	fields := snd.Metadata().Fields
	if len(fields) > 0 {
		fmt.Println("Tags:")
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("  %-12s %s\n", k+":", fields[k])
		}
	}

	if art := snd.Artwork(); art != nil {
		fmt.Printf("Artwork:     %d bytes\n", len(art))
	}
}
