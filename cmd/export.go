package cmd

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	wav "github.com/youpy/go-wav"
	soxr "github.com/zaf/resample"

	"github.com/romanin-rf/playsoundsimple/pkg/decoders"
	"github.com/romanin-rf/playsoundsimple/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export <input_file>",
	Short: "Export an audio file to WAV at a new sample rate",
	Long: `Decode an audio file, optionally resample and mix it down to mono, and
write the result as a 16-bit PCM WAV file.

Examples:
  # Export an MP3 to 48kHz WAV
  playsound export input.mp3 --new-samplerate 48000 --out output.wav

  # Export a FLAC to 44.1kHz mono WAV
  playsound export input.flac --new-samplerate 44100 --mono --out output.wav

Supported Input Formats:
  - MP3 (.mp3)
  - FLAC (.flac, .fla)
  - WAV (.wav)
  - Ogg Vorbis (.ogg, .oga)

Output Format:
  - WAV (16-bit PCM)`,
	Args: cobra.ExactArgs(1),
	Run:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Int("new-samplerate", 48000, "Target sample rate in Hz")
	exportCmd.Flags().String("out", "out_exported.wav", "Output WAV file path")
	exportCmd.Flags().Bool("mono", false, "Mix output down to mono (average channels)")
}

func runExport(cmd *cobra.Command, args []string) {
	inFileName := args[0]

	if _, err := os.Stat(inFileName); os.IsNotExist(err) {
		slog.Error("Input file not found", "path", inFileName)
		os.Exit(1)
	}

	newSampleRate, err := cmd.Flags().GetInt("new-samplerate")
	if err != nil {
		slog.Error("Failed to get new-samplerate flag", "error", err)
		os.Exit(1)
	}

	outFileName, err := cmd.Flags().GetString("out")
	if err != nil {
		slog.Error("Failed to get out flag", "error", err)
		os.Exit(1)
	}

	mixToMono, err := cmd.Flags().GetBool("mono")
	if err != nil {
		slog.Error("Failed to get mono flag", "error", err)
		os.Exit(1)
	}

	if newSampleRate <= 0 || newSampleRate > 384000 {
		slog.Error("Invalid sample rate", "rate", newSampleRate, "valid_range", "1-384000")
		os.Exit(1)
	}

	decoder, err := decoders.NewDecoder(inFileName)
	if err != nil {
		slog.Error("Failed to create decoder", "error", err)
		os.Exit(1)
	}
	defer decoder.Close()

	inSampleRate := decoder.SampleRate()
	channels := min(decoder.Channels(), 2)

	slog.Info("Export starting",
		"input_file", inFileName,
		"input_sample_rate", inSampleRate,
		"input_channels", channels,
		"output_sample_rate", newSampleRate,
		"output_mono", mixToMono,
		"output_file", outFileName)

	slog.Info("Decoding audio data")
	audioData, totalFrames, err := decodeAllAudio(decoder, channels)
	if err != nil {
		slog.Error("Failed to decode audio", "error", err)
		os.Exit(1)
	}

	slog.Info("Decoding complete",
		"input_frames", totalFrames,
		"input_bytes", len(audioData))

	resampledData, err := resampleAudio(audioData, inSampleRate, newSampleRate, channels)
	if err != nil {
		slog.Error("Failed to resample audio", "error", err)
		os.Exit(1)
	}

	outFrames := len(resampledData) / (channels * 2)

	outChannels := channels
	outputData := resampledData

	if mixToMono && channels > 1 {
		slog.Info("Mixing down to mono", "input_channels", channels)
		outputData = mixToMono16Bit(resampledData, channels)
		outChannels = 1
	}

	slog.Info("Writing output WAV file", "path", outFileName)
	if err := writeWAVFile(outFileName, outputData, uint32(outFrames), uint16(outChannels), uint32(newSampleRate)); err != nil {
		slog.Error("Failed to write WAV file", "error", err)
		os.Exit(1)
	}

	slog.Info("Export complete",
		"input_frames", totalFrames,
		"output_frames", outFrames,
		"sample_rate_ratio", fmt.Sprintf("%.3f", float64(newSampleRate)/float64(inSampleRate)))
}

// decodeAllAudio reads the whole stream into memory as interleaved 16-bit
// little-endian PCM.
func decodeAllAudio(decoder types.Decoder, channels int) ([]byte, int, error) {
	const chunkFrames = 4096

	chunk := make([][2]float64, chunkFrames)
	audioData := make([]byte, 0, chunkFrames*channels*2*10)
	totalFrames := 0

	for {
		n, err := decoder.ReadFrames(chunk)
		if err != nil {
			return nil, 0, fmt.Errorf("decode error: %w", err)
		}
		if n == 0 {
			break
		}

		for _, frame := range chunk[:n] {
			for ch := range channels {
				v := frameSampleToInt16(frame[ch])
				audioData = append(audioData, byte(v), byte(v>>8))
			}
		}
		totalFrames += n
	}

	return audioData, totalFrames, nil
}

func frameSampleToInt16(v float64) int16 {
	if v >= 1.0 {
		return 32767
	}
	if v <= -1.0 {
		return -32768
	}
	return int16(v * 32767)
}

// resampleAudio resamples audio data using SoXR (high-quality resampler)
func resampleAudio(audioData []byte, fromRate, toRate, channels int) ([]byte, error) {
	if fromRate == toRate {
		return audioData, nil
	}

	slog.Info("Resampling audio", "from_rate", fromRate, "to_rate", toRate)

	var bufResampled bytes.Buffer
	bufWriter := bufio.NewWriter(&bufResampled)

	resampler, err := soxr.New(
		bufWriter,
		float64(fromRate),
		float64(toRate),
		channels,
		soxr.I16,
		soxr.HighQ,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}

	_, err = resampler.Write(audioData)
	if err != nil {
		resampler.Close()
		return nil, fmt.Errorf("failed to resample: %w", err)
	}

	if err := resampler.Close(); err != nil {
		return nil, fmt.Errorf("failed to close resampler: %w", err)
	}

	if err := bufWriter.Flush(); err != nil {
		return nil, fmt.Errorf("failed to flush buffer: %w", err)
	}

	return bufResampled.Bytes(), nil
}

// mixToMono16Bit mixes interleaved 16-bit audio down to mono by averaging
// channels.
func mixToMono16Bit(data []byte, channels int) []byte {
	bytesPerFrame := channels * 2
	frames := len(data) / bytesPerFrame
	monoData := make([]byte, 0, frames*2)

	for i := range frames {
		sum := int32(0)
		for ch := range channels {
			offset := i*bytesPerFrame + ch*2
			sample := int16(uint16(data[offset]) | uint16(data[offset+1])<<8)
			sum += int32(sample)
		}
		avg := int16(sum / int32(channels))
		monoData = append(monoData, byte(avg), byte(avg>>8))
	}

	return monoData
}

// writeWAVFile writes 16-bit PCM audio data to a WAV file
func writeWAVFile(fileName string, audioData []byte, numFrames uint32, numChannels uint16, sampleRate uint32) error {
	fOut, err := os.OpenFile(fileName, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer fOut.Close()

	wavWriter := wav.NewWriter(fOut, numFrames, numChannels, sampleRate, 16)

	if _, err := wavWriter.Write(audioData); err != nil {
		return fmt.Errorf("failed to write WAV data: %w", err)
	}

	return nil
}
