package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"whisper-server/internal/app/util/files"
)

// Paths to the ffmpeg tools. Overridable for environments where they are not on PATH.
var (
	FFmpegPath  = "ffmpeg"
	FFprobePath = "ffprobe"
)

// WhisperSampleRate is the only sample rate whisper.cpp accepts.
const WhisperSampleRate = 16000

type ffprobeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate int    `json:"sample_rate,string"`
	} `json:"streams"`
}

// Is16kHzWavFile reports whether filePath already holds 16 kHz PCM audio.
func Is16kHzWavFile(ctx context.Context, filePath string) (bool, error) {
	cmd := exec.CommandContext(ctx, FFprobePath, "-v", "quiet", "-print_format", "json", "-show_streams", filePath)
	output, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("ffprobe %s: %w", filepath.Base(filePath), err)
	}

	return is16kHzPCM(output)
}

func is16kHzPCM(probeJSON []byte) (bool, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(probeJSON, &probe); err != nil {
		return false, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, stream := range probe.Streams {
		if stream.CodecType == "audio" && stream.CodecName == "pcm_s16le" && stream.SampleRate == WhisperSampleRate {
			return true, nil
		}
	}

	return false, nil
}

// WavPath returns the path ConvertTo16kHzWav writes to for inputFilePath.
func WavPath(inputFilePath string) string {
	return files.StripExt(inputFilePath) + "_16khz.wav"
}

// ConvertTo16kHzWav decodes any ffmpeg-readable input into 16 kHz mono PCM WAV
// at outputWavPath, overwriting it if present.
func ConvertTo16kHzWav(ctx context.Context, inputFilePath, outputWavPath string) error {
	cmd := exec.CommandContext(ctx, FFmpegPath,
		"-nostdin", "-y",
		"-i", inputFilePath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprint(WhisperSampleRate),
		"-ac", "1",
		outputWavPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("FFmpeg error: %w, stderr: %s", err, lastLines(stderr.String(), 5))
	}

	return nil
}

// lastLines keeps error messages readable; ffmpeg prints its whole banner to stderr.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
