package audio

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIs16kHzPCM(t *testing.T) {
	tests := []struct {
		name    string
		probe   string
		want    bool
		wantErr bool
	}{
		{
			name:  "16kHz pcm wav",
			probe: `{"streams":[{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"16000"}]}`,
			want:  true,
		},
		{
			name:  "44.1kHz pcm wav",
			probe: `{"streams":[{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"44100"}]}`,
			want:  false,
		},
		{
			name:  "webm opus",
			probe: `{"streams":[{"codec_type":"audio","codec_name":"opus","sample_rate":"48000"}]}`,
			want:  false,
		},
		{
			name:  "video stream first",
			probe: `{"streams":[{"codec_type":"video","codec_name":"h264"},{"codec_type":"audio","codec_name":"pcm_s16le","sample_rate":"16000"}]}`,
			want:  true,
		},
		{
			name:  "no streams",
			probe: `{"streams":[]}`,
			want:  false,
		},
		{
			name:    "garbage",
			probe:   `not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := is16kHzPCM([]byte(tt.probe))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWavPath(t *testing.T) {
	assert.Equal(t, "/tmp/upload-1_16khz.wav", WavPath("/tmp/upload-1.webm"))
	assert.Equal(t, "/tmp/upload-1_16khz.wav", WavPath("/tmp/upload-1"))
}

func TestLastLines(t *testing.T) {
	in := "banner\nconfig\nline1\nline2\n"
	assert.Equal(t, "line1\nline2", lastLines(in, 2))
	assert.Equal(t, "only", lastLines("only", 5))
}

func TestConvertTo16kHzWav_Integration(t *testing.T) {
	if _, err := exec.LookPath(FFmpegPath); err != nil {
		t.Skip("ffmpeg not installed")
	}
	if _, err := exec.LookPath(FFprobePath); err != nil {
		t.Skip("ffprobe not installed")
	}

	ctx := context.Background()
	dir := t.TempDir()
	input := filepath.Join(dir, "tone.wav")

	// One second of 440Hz at 44.1kHz, generated by ffmpeg itself.
	gen := exec.Command(FFmpegPath, "-nostdin", "-y", "-f", "lavfi", "-i", "sine=frequency=440:duration=1", "-ar", "44100", input)
	require.NoError(t, gen.Run())

	ok, err := Is16kHzWavFile(ctx, input)
	require.NoError(t, err)
	assert.False(t, ok)

	output := WavPath(input)
	require.NoError(t, ConvertTo16kHzWav(ctx, input, output))

	ok, err = Is16kHzWavFile(ctx, output)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConvertTo16kHzWav_BadInput(t *testing.T) {
	if _, err := exec.LookPath(FFmpegPath); err != nil {
		t.Skip("ffmpeg not installed")
	}

	dir := t.TempDir()
	input := filepath.Join(dir, "not-audio.webm")
	require.NoError(t, os.WriteFile(input, []byte("definitely not audio"), 0o600))

	err := ConvertTo16kHzWav(context.Background(), input, WavPath(input))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "FFmpeg error"))
}
