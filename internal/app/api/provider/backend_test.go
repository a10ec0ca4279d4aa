package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"whisper-server/internal/app/api"
	"whisper-server/internal/config"
)

type staticTranscriber struct{ text string }

func (s staticTranscriber) Transcribe(ctx context.Context, inputFilePath string) (*api.Transcript, error) {
	return &api.Transcript{Text: s.text}, nil
}

func withCleanRegistry(t *testing.T) {
	t.Helper()
	registryMutex.Lock()
	saved := backendRegistry
	backendRegistry = make(map[string]BackendCreator)
	registryMutex.Unlock()

	t.Cleanup(func() {
		registryMutex.Lock()
		backendRegistry = saved
		registryMutex.Unlock()
	})
}

func TestRegistry(t *testing.T) {
	withCleanRegistry(t)

	RegisterBackend("zeta", func(config.ModelConfig, *zap.Logger) (api.Transcriber, error) { return nil, nil })
	RegisterBackend("alpha", func(config.ModelConfig, *zap.Logger) (api.Transcriber, error) { return nil, nil })

	assert.Equal(t, []string{"alpha", "zeta"}, ListRegisteredBackends())

	_, err := GetBackendCreator("alpha")
	assert.NoError(t, err)

	_, err = GetBackendCreator("missing")
	assert.ErrorContains(t, err, "backend type missing not registered")
}

func TestLoadModel(t *testing.T) {
	withCleanRegistry(t)
	logger := zap.NewNop()

	var seen config.ModelConfig
	RegisterBackend("static", func(cfg config.ModelConfig, _ *zap.Logger) (api.Transcriber, error) {
		seen = cfg
		return staticTranscriber{text: "hello"}, nil
	})
	RegisterBackend("broken", func(config.ModelConfig, *zap.Logger) (api.Transcriber, error) {
		return nil, errors.New("model file missing")
	})

	t.Run("success", func(t *testing.T) {
		tr, err := LoadModel(config.ModelConfig{Backend: "static", Name: "base"}, logger)
		require.NoError(t, err)
		assert.Equal(t, "base", seen.Name)

		out, err := tr.Transcribe(context.Background(), "/tmp/x.webm")
		require.NoError(t, err)
		assert.Equal(t, "hello", out.Text)
	})

	t.Run("creator error", func(t *testing.T) {
		_, err := LoadModel(config.ModelConfig{Backend: "broken", Name: "base"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `failed to load broken model "base"`)
		assert.Contains(t, err.Error(), "model file missing")
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, err := LoadModel(config.ModelConfig{Backend: "vosk"}, logger)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "registered: [broken static]")
	})
}
