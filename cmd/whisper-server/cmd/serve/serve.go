package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whisper-server/internal/app"
	"whisper-server/internal/app/logging"
	"whisper-server/internal/config"
)

var (
	// ConfigFile and Verbose are bound to persistent flags on the root command.
	ConfigFile string
	Verbose    bool
)

type options struct {
	host       string
	port       int
	dev        bool
	backend    string
	model      string
	modelsDir  string
	modelPath  string
	binary     string
	language   string
	threads    int
	scratchDir string
	logLevel   string
	logFile    string
}

var opts options

// Cmd represents the serve command
var Cmd = newCmd(&opts)

func newCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Load the model and start the HTTP server",
		Long: `Load the speech-to-text model once and serve POST /transcribe.

Configuration is read from defaults, then the optional --config YAML file, then
the environment (a .env file is loaded if present), then these flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.InitializeConfig(ConfigFile)
			if err != nil {
				return err
			}
			applyFlags(cmd, o, cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.host, "host", config.DefaultHost, "address to listen on")
	f.IntVarP(&o.port, "port", "p", config.DefaultPort, "port to listen on")
	f.BoolVar(&o.dev, "dev", false, "development mode (debug gin, console logs)")
	f.StringVarP(&o.backend, "backend", "b", config.DefaultBackend,
		"inference backend: "+strings.Join(config.Backends, ", "))
	f.StringVarP(&o.model, "model", "m", config.DefaultModelName, "model tier, e.g. tiny, base, small")
	f.StringVar(&o.modelsDir, "models-dir", config.DefaultModelsDir, "directory holding ggml-<model>.bin files")
	f.StringVar(&o.modelPath, "model-path", "", "explicit ggml model file (overrides --model and --models-dir)")
	f.StringVar(&o.binary, "binary", config.DefaultWhisperBinary, "whisper.cpp binary name or path")
	f.StringVarP(&o.language, "language", "l", config.DefaultLanguage, "spoken language code, or auto")
	f.IntVarP(&o.threads, "threads", "t", 0, "whisper.cpp threads (0 uses its default)")
	f.StringVar(&o.scratchDir, "scratch-dir", "", "directory for temporary upload files (default OS temp dir)")
	f.StringVar(&o.logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")
	f.StringVar(&o.logFile, "log-file", "", "also write JSON logs to this file, rotated by size")

	return cmd
}

// applyFlags overrides cfg with every flag the user set explicitly.
func applyFlags(cmd *cobra.Command, o *options, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("host") {
		cfg.Server.Host = o.host
	}
	if changed("port") {
		cfg.Server.Port = o.port
	}
	if changed("dev") && o.dev {
		cfg.Server.Environment = "development"
		cfg.Log.Development = true
	}
	if changed("backend") {
		cfg.Model.Backend = o.backend
	}
	if changed("model") {
		cfg.Model.Name = o.model
	}
	if changed("models-dir") {
		cfg.Model.ModelsDir = o.modelsDir
	}
	if changed("model-path") {
		cfg.Model.ModelPath = o.modelPath
	}
	if changed("binary") {
		cfg.Model.BinaryPath = o.binary
	}
	if changed("language") {
		cfg.Model.Language = o.language
	}
	if changed("threads") {
		cfg.Model.Threads = o.threads
	}
	if changed("scratch-dir") {
		cfg.Scratch.Dir = o.scratchDir
	}
	if changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
	if changed("log-file") {
		cfg.Log.File = o.logFile
	}
	if Verbose {
		cfg.Log.Level = "debug"
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, err := logging.NewLogger(logging.Options{
		Development: cfg.Log.Development,
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, err := app.InitializeServer(cfg, logger, registry)
	if err != nil {
		logger.Error("Failed to initialize server", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := srv.Start()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Received shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
