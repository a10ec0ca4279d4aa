package whisper

import (
	"fmt"

	"go.uber.org/zap"

	"whisper-server/internal/app/api"
	"whisper-server/internal/app/api/openai"
	"whisper-server/internal/app/api/provider"
	"whisper-server/internal/config"
)

func init() {
	provider.RegisterBackend(config.BackendOpenAI, createOpenAIBackend)
}

// createOpenAIBackend creates an OpenAI Whisper model handle from configuration
func createOpenAIBackend(cfg config.ModelConfig, logger *zap.Logger) (api.Transcriber, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai backend requires OPENAI_API_KEY")
	}

	logger.Named("openai").Debug("Using OpenAI transcription API",
		zap.String("model", cfg.OpenAIModel),
		zap.String("base_url", cfg.OpenAIBaseURL),
	)

	client := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	return NewRemoteTranscriber(client, cfg.OpenAIModel, cfg.Language), nil
}
