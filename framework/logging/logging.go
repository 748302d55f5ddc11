// Package logging builds the application's slog.Logger from config.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/km-arc/go-facade/framework/config"
)

// New returns a logger writing to w in the configured format ("json" or
// "text", default text) at the configured level.
//
//	// Laravel: config/logging.php → 'level' => env('LOG_LEVEL', 'debug')
//	logger := logging.New(cfg.Log, os.Stderr)
func New(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// ParseLevel maps debug|info|warn|warning|error to a slog level. Anything
// else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
