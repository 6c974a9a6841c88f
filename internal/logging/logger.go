// Package logging provides a minimal logging interface for the runtime.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) used across the loader and diagnostics layers. A slog-backed
// adapter is provided for hosts that want structured output, and a NoOp
// logger for silent operation (tests, minimal embeddings).
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Logger is the minimal logging interface the runtime depends on.
// Hosts may supply their own implementation or use the built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// NewSlogLogger creates a text-format slog logger writing to stderr at the
// given level. Unknown level strings fall back to info.
func NewSlogLogger(level string) *SlogAdapter {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	return &SlogAdapter{slog.New(slog.NewTextHandler(os.Stderr, opts))}
}

// parseLevel maps a level name to a slog level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// NoOpLogger discards all log output.
type NoOpLogger struct{}

// NewNoOpLogger creates a logger that discards everything.
func NewNoOpLogger() *NoOpLogger { return &NoOpLogger{} }

// Debug implements Logger.
func (*NoOpLogger) Debug(string, ...any) {}

// Info implements Logger.
func (*NoOpLogger) Info(string, ...any) {}

// Warn implements Logger.
func (*NoOpLogger) Warn(string, ...any) {}

// Error implements Logger.
func (*NoOpLogger) Error(string, ...any) {}
