package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNoOpLogger(t *testing.T) {
	var log Logger = NewNoOpLogger()
	log.Debug("a")
	log.Info("b", "k", 1)
	log.Warn("c")
	log.Error("d", "err", "x")
}

func TestSlogAdapterImplementsLogger(t *testing.T) {
	var _ Logger = NewSlogLogger("debug")
}
