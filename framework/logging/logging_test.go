package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-facade/framework/config"
	"github.com/km-arc/go-facade/framework/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, logging.ParseLevel(in), in)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(config.LogConfig{Level: "info", Format: "json"}, &buf)

	logger.Debug("hidden")
	logger.Info("booted", "facades", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "booted", rec["msg"])
	assert.Equal(t, float64(1), rec["facades"])
}

func TestNew_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(config.LogConfig{Level: "debug", Format: "text"}, &buf)

	logger.Debug("container: bound", "abstract", "greeting")
	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "abstract=greeting")
}
