package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"whisper-server/internal/app/api"
	"whisper-server/internal/app/logging"
	"whisper-server/internal/app/metrics"
	"whisper-server/internal/app/util/files"
	"whisper-server/internal/config"
)

const scratchPrefix = "upload-"

// Upload is one audio file submitted by a client.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Service turns uploads into transcripts using the process-wide model handle.
// It holds no per-request state; scratch files are private to each call.
type Service struct {
	model      api.Transcriber
	scratchDir string
	suffix     string
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewService creates the transcription service. The scratch directory is
// created if it does not exist.
func NewService(model api.Transcriber, scratch config.ScratchConfig, m *metrics.Metrics, logger *zap.Logger) (*Service, error) {
	dir := scratch.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory %s: %w", dir, err)
	}

	return &Service{
		model:      model,
		scratchDir: dir,
		suffix:     scratch.Suffix,
		metrics:    m,
		logger:     logger.Named("transcribe"),
	}, nil
}

// Process saves the upload to a scratch file, runs the model on it and returns
// the whitespace-trimmed transcript. The scratch file is removed on every path.
func (s *Service) Process(ctx context.Context, upload Upload) Result {
	if upload.Content == nil {
		s.metrics.RecordFailure(metrics.OutcomeBadRequest)
		return Failure(KindBadRequest, ErrNoFilePart)
	}
	if upload.Filename == "" {
		s.metrics.RecordFailure(metrics.OutcomeBadRequest)
		return Failure(KindBadRequest, ErrNoSelectedFile)
	}

	done := s.metrics.TrackInFlight()
	defer done()

	logger := s.logger.With(
		zap.String("request_id", logging.RequestID(ctx)),
		zap.String("filename", upload.Filename),
	)

	scratchPath, size, err := files.WriteUnique(s.scratchDir, scratchPrefix, s.suffix, upload.Content)
	if err != nil {
		return s.fail(logger, fmt.Errorf("failed to save upload: %w", err))
	}
	defer s.removeScratch(logger, scratchPath)

	start := time.Now()
	transcript, err := s.model.Transcribe(ctx, scratchPath)
	elapsed := time.Since(start)
	s.metrics.ObserveInference(elapsed)
	if err != nil {
		return s.fail(logger.With(zap.Duration("elapsed", elapsed)), err)
	}
	if transcript == nil {
		return s.fail(logger, errors.New("model returned no transcript"))
	}

	text := strings.TrimSpace(transcript.Text)

	s.metrics.RecordSuccess(size)
	logger.Info("Transcription completed",
		zap.Int64("bytes", size),
		zap.Duration("elapsed", elapsed),
		zap.Int("chars", len(text)),
	)

	return Success(text)
}

func (s *Service) removeScratch(logger *zap.Logger, path string) {
	if err := files.Remove(path); err != nil {
		logger.Warn("Failed to remove scratch file", zap.String("path", path), zap.Error(err))
	}
}

func (s *Service) fail(logger *zap.Logger, err error) Result {
	s.metrics.RecordFailure(metrics.OutcomeFailed)
	logger.Error("Transcription error", zap.Error(err))
	return Failure(KindInternal, err)
}
