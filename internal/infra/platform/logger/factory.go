package logger

import (
	"log/slog"
	"os"
	"strings"

	gcplogger "github.com/kawabatas/songbook/internal/infra/platform/gcp/logger"
)

// New returns a logger for provider: "text" for local development,
// anything else gets the Cloud Logging JSON format.
func New(provider string, level slog.Level) *slog.Logger {
	switch strings.ToLower(provider) {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	default:
		return gcplogger.New(os.Stdout, level)
	}
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "-4", "debug":
		return slog.LevelDebug
	case "0", "info":
		return slog.LevelInfo
	case "4", "warn":
		return slog.LevelWarn
	case "8", "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
