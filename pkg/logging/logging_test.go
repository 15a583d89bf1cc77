package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"warning alias", "WARNING", slog.LevelWarn},
		{"error", "Error", slog.LevelError},
		{"whitespace", "  debug  ", slog.LevelDebug},
		{"unknown defaults to info", "verbose", slog.LevelInfo},
		{"empty defaults to info", "", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewStructuredLogger(t *testing.T) {
	logger := NewStructuredLogger("test", "v0.0.1", "debug")
	if logger == nil {
		t.Fatal("expected logger, got nil")
	}
	if !logger.Enabled(t.Context(), slog.LevelDebug) {
		t.Error("expected debug level to be enabled")
	}

	logger = NewStructuredLogger("test", "v0.0.1", "error")
	if logger.Enabled(t.Context(), slog.LevelInfo) {
		t.Error("expected info level to be disabled at error level")
	}
}
