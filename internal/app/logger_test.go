package app

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelWarn},
		{"loud", slog.LevelWarn},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			logger := newLogger(tc.level, "text", &bytes.Buffer{})

			// --- Assert ---
			ctx := context.Background()
			assert.True(t, logger.Enabled(ctx, tc.want))
			assert.False(t, logger.Enabled(ctx, tc.want-1))
		})
	}
}

func TestNewLogger_JSON(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := &bytes.Buffer{}
	logger := newLogger(DefaultLogLevel, "json", out)

	// --- Act ---
	logger.Info("Hidden.")
	logger.Warn("Template ignores supplied placeholders.", "template", "options.cpp")

	// --- Assert ---
	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "options.cpp", record["template"])
}
