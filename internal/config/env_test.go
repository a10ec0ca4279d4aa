package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	t.Run("no env file", func(t *testing.T) {
		loaded, err := LoadEnv()
		assert.NoError(t, err)
		assert.Empty(t, loaded)
	})

	t.Run("loads .env without overriding existing variables", func(t *testing.T) {
		content := "WHISPER_TEST_ONLY_NEW=from-file\nWHISPER_TEST_ONLY_SET=from-file\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))
		t.Setenv("WHISPER_TEST_ONLY_SET", "from-env")
		t.Setenv("WHISPER_TEST_ONLY_NEW", "")
		os.Unsetenv("WHISPER_TEST_ONLY_NEW")

		loaded, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, ".env", loaded)
		assert.Equal(t, "from-file", os.Getenv("WHISPER_TEST_ONLY_NEW"))
		assert.Equal(t, "from-env", os.Getenv("WHISPER_TEST_ONLY_SET"))
	})
}
