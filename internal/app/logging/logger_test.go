package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("production defaults", func(t *testing.T) {
		logger, err := NewLogger(Options{})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("explicit level", func(t *testing.T) {
		logger, err := NewLogger(Options{Level: "debug"})
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := NewLogger(Options{Level: "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "server.log")
		logger, err := NewLogger(Options{Level: "info", File: path, MaxSizeMB: 1})
		require.NoError(t, err)

		logger.Info("scratch file removed", zap.String("path", "/tmp/upload.webm"))
		_ = logger.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "scratch file removed")
		assert.Contains(t, string(data), `"path":"/tmp/upload.webm"`)
	})
}
