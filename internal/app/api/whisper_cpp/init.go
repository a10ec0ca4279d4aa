package whisper_cpp

import (
	"go.uber.org/zap"

	"whisper-server/internal/app/api"
	"whisper-server/internal/app/api/provider"
	"whisper-server/internal/config"
)

func init() {
	provider.RegisterBackend(config.BackendWhisperCpp, createWhisperCppBackend)
}

// createWhisperCppBackend creates a whisper.cpp model handle from configuration
func createWhisperCppBackend(cfg config.ModelConfig, logger *zap.Logger) (api.Transcriber, error) {
	return NewLocalTranscriber(LocalConfig{
		BinaryPath: cfg.BinaryPath,
		ModelPath:  cfg.ResolvedModelPath(),
		Language:   cfg.Language,
		Threads:    cfg.Threads,
	}, logger)
}
