package whisper_cpp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"whisper-server/internal/app/api"
	"whisper-server/internal/app/audio"
	"whisper-server/internal/app/util/files"
)

// LocalConfig locates the whisper.cpp binary and ggml model.
type LocalConfig struct {
	BinaryPath string
	ModelPath  string
	Language   string
	Threads    int
}

// LocalTranscriber implements local transcription, using local binary commands.
type LocalTranscriber struct {
	binaryPath string
	modelPath  string
	language   string
	threads    int
	logger     *zap.Logger

	// swapped out in tests
	probe   func(ctx context.Context, path string) (bool, error)
	convert func(ctx context.Context, in, out string) error
}

// NewLocalTranscriber loads the whisper.cpp model handle. The binary must be
// executable and the model file must exist; nothing is checked again per request.
func NewLocalTranscriber(cfg LocalConfig, logger *zap.Logger) (*LocalTranscriber, error) {
	binaryPath, err := exec.LookPath(cfg.BinaryPath)
	if err != nil {
		return nil, fmt.Errorf("whisper.cpp binary %q not usable: %w", cfg.BinaryPath, err)
	}

	info, err := os.Stat(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("whisper.cpp model %q not found: %w", cfg.ModelPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("whisper.cpp model %q is a directory", cfg.ModelPath)
	}

	language := cfg.Language
	if language == "" {
		language = "auto"
	}

	return &LocalTranscriber{
		binaryPath: binaryPath,
		modelPath:  cfg.ModelPath,
		language:   language,
		threads:    cfg.Threads,
		logger:     logger.Named("whisper_cpp"),
		probe:      audio.Is16kHzWavFile,
		convert:    audio.ConvertTo16kHzWav,
	}, nil
}

// Transcribe converts the input to 16kHz WAV when needed, runs whisper.cpp on it
// and returns the text it wrote. Intermediate files are removed before returning.
func (lt *LocalTranscriber) Transcribe(ctx context.Context, inputFilePath string) (*api.Transcript, error) {
	start := time.Now()

	is16kHzWav, err := lt.probe(ctx, inputFilePath)
	if err != nil {
		return nil, fmt.Errorf("error checking input file: %w", err)
	}

	wavPath := inputFilePath
	if !is16kHzWav {
		wavPath = audio.WavPath(inputFilePath)
		defer lt.remove(wavPath)

		if err := lt.convert(ctx, inputFilePath, wavPath); err != nil {
			return nil, fmt.Errorf("error converting input file: %w", err)
		}
	}

	outputPrefix := files.StripExt(inputFilePath) + "_transcript"
	outputFile := outputPrefix + ".txt"
	defer lt.remove(outputFile)

	args := []string{
		"-m", lt.modelPath,
		"-l", lt.language,
		"-np",
		"-otxt",
		"-of", outputPrefix,
	}
	if lt.threads > 0 {
		args = append(args, "-t", strconv.Itoa(lt.threads))
	}
	args = append(args, "-f", wavPath)

	command := exec.CommandContext(ctx, lt.binaryPath, args...)
	var stderr bytes.Buffer
	command.Stderr = &stderr

	lt.logger.Debug("Running transcription command",
		zap.String("binary", lt.binaryPath),
		zap.Strings("args", args),
	)

	if err := command.Run(); err != nil {
		return nil, fmt.Errorf("command execution error: %w, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	output, err := os.ReadFile(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %w", err)
	}

	lt.logger.Debug("Transcription finished",
		zap.Bool("converted_audio", !is16kHzWav),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &api.Transcript{Text: string(output)}, nil
}

func (lt *LocalTranscriber) remove(path string) {
	if err := files.Remove(path); err != nil {
		lt.logger.Warn("Failed to remove intermediate file", zap.String("path", path), zap.Error(err))
	}
}
