package config

import "time"

// Server defaults. The listen address and model tier are what existing
// clients expect to find.
const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 5001
	DefaultEnvironment = "production"

	DefaultReadHeaderTimeout = 30 * time.Second
	DefaultWriteTimeout      = 15 * time.Minute
	DefaultIdleTimeout       = 120 * time.Second
	DefaultShutdownTimeout   = 30 * time.Second

	maxConfiguredTimeout = 30 * time.Minute
)

const (
	BackendWhisperCpp = "whisper_cpp"
	BackendOpenAI     = "openai"

	DefaultBackend       = BackendWhisperCpp
	DefaultModelName     = "base"
	DefaultWhisperBinary = "whisper-cli"
	DefaultModelsDir     = "models"
	DefaultLanguage      = "auto"
	DefaultOpenAIModel   = "whisper-1"
	DefaultScratchSuffix = ".webm"
)

const (
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 100
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

// Backends lists the inference backends the server can be started with.
var Backends = []string{BackendWhisperCpp, BackendOpenAI}
