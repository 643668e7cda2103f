package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	loggerMu sync.RWMutex
	logger   *slog.Logger
)

func init() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelFromEnv()}))
}

// levelFromEnv maps DARKSCAN_LOG_LEVEL to a slog level, defaulting to info.
func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("DARKSCAN_LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger returns the process-wide structured logger. Diagnostics go to
// stderr so stdout stays reserved for the scan report.
func Logger() *slog.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger overrides the global logger (useful for tests or custom sinks).
func SetLogger(l *slog.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// DiscardLogging routes logs to io.Discard while keeping handler semantics.
func DiscardLogging() {
	SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}
