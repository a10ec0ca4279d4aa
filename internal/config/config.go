package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration. It is built once at startup
// and never changes while the process runs.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Model   ModelConfig   `yaml:"model"`
	Scratch ScratchConfig `yaml:"scratch"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host              string        `yaml:"host" validate:"required"`
	Port              int           `yaml:"port" validate:"min=1,max=65535"`
	Environment       string        `yaml:"environment" validate:"oneof=development production"`
	// ReadHeaderTimeout bounds only the request headers; upload bodies are
	// streamed for as long as WriteTimeout allows.
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// ModelConfig selects and locates the speech-to-text model loaded at startup.
type ModelConfig struct {
	Backend string `yaml:"backend" validate:"oneof=whisper_cpp openai"`
	// Name is the quality/speed tier, e.g. tiny, base, small.
	Name     string `yaml:"name" validate:"required"`
	Language string `yaml:"language"`
	Threads  int    `yaml:"threads" validate:"min=0"`

	// whisper.cpp settings
	BinaryPath string `yaml:"binary_path" validate:"required_if=Backend whisper_cpp"`
	ModelsDir  string `yaml:"models_dir"`
	ModelPath  string `yaml:"model_path"`

	// OpenAI settings
	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url" validate:"omitempty,url"`
	OpenAIModel   string `yaml:"openai_model" validate:"required_if=Backend openai"`
}

// ScratchConfig controls where uploads are materialized before inference.
type ScratchConfig struct {
	Dir    string `yaml:"dir"`
	Suffix string `yaml:"suffix" validate:"required,startswith=."`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
	File        string `yaml:"file"`
	MaxSizeMB   int    `yaml:"max_size_mb" validate:"min=0"`
	MaxBackups  int    `yaml:"max_backups" validate:"min=0"`
	MaxAgeDays  int    `yaml:"max_age_days" validate:"min=0"`
}

// Default returns the configuration the server runs with when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              DefaultHost,
			Port:              DefaultPort,
			Environment:       DefaultEnvironment,
			ReadHeaderTimeout: DefaultReadHeaderTimeout,
			WriteTimeout:      DefaultWriteTimeout,
			IdleTimeout:       DefaultIdleTimeout,
			ShutdownTimeout:   DefaultShutdownTimeout,
		},
		Model: ModelConfig{
			Backend:     DefaultBackend,
			Name:        DefaultModelName,
			Language:    DefaultLanguage,
			BinaryPath:  DefaultWhisperBinary,
			ModelsDir:   DefaultModelsDir,
			OpenAIModel: DefaultOpenAIModel,
		},
		Scratch: ScratchConfig{
			Dir:    os.TempDir(),
			Suffix: DefaultScratchSuffix,
		},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of precedence (later wins).
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides configuration with values from the environment.
func (c *Config) ApplyEnv() error {
	c.Server.Host = getEnvOrDefault("WHISPER_SERVER_HOST", c.Server.Host)
	if port := strings.TrimSpace(os.Getenv("WHISPER_SERVER_PORT")); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid WHISPER_SERVER_PORT %q: %w", port, err)
		}
		c.Server.Port = p
	}
	c.Server.Environment = getEnvOrDefault("WHISPER_SERVER_ENV", c.Server.Environment)

	c.Model.Backend = getEnvOrDefault("WHISPER_BACKEND", c.Model.Backend)
	c.Model.BinaryPath = getEnvOrDefault("WHISPER_CPP_BINARY", c.Model.BinaryPath)
	c.Model.ModelsDir = getEnvOrDefault("WHISPER_CPP_MODELS_DIR", c.Model.ModelsDir)
	c.Model.ModelPath = getEnvOrDefault("WHISPER_CPP_MODEL", c.Model.ModelPath)
	c.Model.OpenAIAPIKey = getEnvOrDefault("OPENAI_API_KEY", c.Model.OpenAIAPIKey)
	c.Model.OpenAIBaseURL = getEnvOrDefault("OPENAI_BASE_URL", c.Model.OpenAIBaseURL)

	c.Scratch.Dir = getEnvOrDefault("WHISPER_SCRATCH_DIR", c.Scratch.Dir)
	c.Log.Level = getEnvOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnvOrDefault("LOG_FILE", c.Log.File)

	return nil
}

// Address returns the host:port the server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// ResolvedModelPath returns the ggml model file for the configured tier.
// An explicit ModelPath wins over ModelsDir/ggml-<name>.bin.
func (m ModelConfig) ResolvedModelPath() string {
	if m.ModelPath != "" {
		return m.ModelPath
	}
	return filepath.Join(m.ModelsDir, fmt.Sprintf("ggml-%s.bin", m.Name))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
