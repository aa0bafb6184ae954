package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbo-tools/dadismatch/pkg/logging"
)

func TestConfigFunctions(t *testing.T) {
	originalLogger := *logging.Default()
	originalLevel := zerolog.GlobalLevel()
	defer func() {
		logging.SetDefault(originalLogger)
		zerolog.SetGlobalLevel(originalLevel)
	}()

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.NotNil(t, cfg)
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.False(t, cfg.AddCaller)
		assert.Equal(t, "stderr", cfg.Output)
	})

	t.Run("NewLoggerFromConfig writes to file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "run.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:     "debug",
			Format:    "json",
			Output:    path,
			AddCaller: true,
			Fields:    map[string]any{"component": "matcher"},
		})
		logger.Info().Msg("test message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.Contains(t, output, "test message")
		assert.Contains(t, output, `"component":"matcher"`)
		assert.Contains(t, output, `"caller"`)
	})

	t.Run("Configure sets global logger from config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "warn.log")

		logging.Configure(&logging.Config{
			Level:  "warn",
			Format: "json",
			Output: path,
		})

		logging.Debug().Msg("debug message")
		logging.Info().Msg("info message")
		logging.Warn().Msg("warn message")
		logging.Error().Msg("error message")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("console format configuration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.log")

		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:   "info",
			Format:  "console",
			Output:  path,
			NoColor: true,
		})
		logger.Info().Str("key", "value").Msg("console test")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		output := string(content)
		assert.Contains(t, output, "console test")
		assert.Contains(t, output, "INF")
	})

	t.Run("discard output with auto format", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "info", Format: "auto", Output: "discard"})
		assert.NotPanics(t, func() { logger.Info().Msg("dropped") })
	})
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "warning", "error", "DEBUG"} {
		assert.True(t, logging.ValidLevel(level), level)
	}
	for _, level := range []string{"", "verbose", "fatal", "loud"} {
		assert.False(t, logging.ValidLevel(level), level)
	}
}
