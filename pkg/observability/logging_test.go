package observability

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "warning alias", input: "warning", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "uppercase", input: "ERROR", expected: slog.LevelError},
		{name: "empty defaults to info", input: "", expected: slog.LevelInfo},
		{name: "unknown defaults to info", input: "xyzzy", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestInitLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		logger := InitLogger(LogConfig{Level: "debug", Format: "json"})
		require.NotNil(t, logger)
		logger.Info("test message", "key", "value")
	})

	t.Run("text format is the default", func(t *testing.T) {
		logger := InitLogger(LogConfig{Level: "warn"})
		require.NotNil(t, logger)
		logger.Warn("warning message")
	})

	t.Run("sets process default", func(t *testing.T) {
		logger := InitLogger(LogConfig{Level: "info", Format: "json"})
		assert.Equal(t, logger.Handler(), slog.Default().Handler())
	})
}

func TestRunLogger(t *testing.T) {
	base := InitLogger(LogConfig{Level: "info", Format: "json"})
	scoped := RunLogger(base, "risk", "run-123")
	require.NotNil(t, scoped)
	scoped.Info("scoped message")
}
