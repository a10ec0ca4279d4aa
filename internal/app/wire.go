//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"whisper-server/internal/api/handlers"
	"whisper-server/internal/api/server"
	"whisper-server/internal/app/api/provider"
	"whisper-server/internal/app/metrics"
	"whisper-server/internal/app/transcribe"
	"whisper-server/internal/config"
)

// InitializeServer loads the model once and builds the HTTP server around it.
func InitializeServer(cfg *config.Config, logger *zap.Logger, registry *prometheus.Registry) (*server.Server, error) {
	wire.Build(
		wire.FieldsOf(new(*config.Config), "Server", "Model", "Scratch"),
		wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
		wire.Bind(new(handlers.TranscriptionService), new(*transcribe.Service)),
		provider.LoadModel,
		metrics.New,
		transcribe.NewService,
		server.NewServer,
	)
	return &server.Server{}, nil
}
