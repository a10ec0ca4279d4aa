package provider

import (
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"whisper-server/internal/app/api"
	"whisper-server/internal/config"
)

// BackendCreator builds the process-wide model handle for one backend type.
// It runs once, at startup.
type BackendCreator func(cfg config.ModelConfig, logger *zap.Logger) (api.Transcriber, error)

var (
	backendRegistry = make(map[string]BackendCreator)
	registryMutex   sync.RWMutex
)

// RegisterBackend registers a backend creator function
func RegisterBackend(backendType string, creator BackendCreator) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	backendRegistry[backendType] = creator
}

// GetBackendCreator returns the creator function for a backend type
func GetBackendCreator(backendType string) (BackendCreator, error) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	creator, ok := backendRegistry[backendType]
	if !ok {
		return nil, fmt.Errorf("backend type %s not registered", backendType)
	}
	return creator, nil
}

// ListRegisteredBackends returns all registered backend types, sorted.
func ListRegisteredBackends() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	backends := make([]string, 0, len(backendRegistry))
	for backendType := range backendRegistry {
		backends = append(backends, backendType)
	}
	slices.Sort(backends)
	return backends
}

// LoadModel constructs the model handle selected by cfg.Backend.
func LoadModel(cfg config.ModelConfig, logger *zap.Logger) (api.Transcriber, error) {
	creator, err := GetBackendCreator(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("cannot load model: %w (registered: %v)", err, ListRegisteredBackends())
	}

	transcriber, err := creator(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s model %q: %w", cfg.Backend, cfg.Name, err)
	}

	logger.Info("Model loaded",
		zap.String("backend", cfg.Backend),
		zap.String("model", cfg.Name),
	)

	return transcriber, nil
}
