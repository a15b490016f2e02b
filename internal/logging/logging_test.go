package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"DEBUG", zapcore.DebugLevel},
		{" info ", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.WarnLevel},
		{"verbose", zapcore.WarnLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in, zapcore.WarnLevel); got != tt.want {
			t.Errorf("ParseLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Options{Level: "warn"}, zapcore.AddSync(&buf))

	logger.Info("hidden message")
	logger.Warn("visible message", zap.Int("kernel_size", 5))
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden message") {
		t.Error("info entry written at warn level")
	}
	if !strings.Contains(out, "visible message") || !strings.Contains(out, "kernel_size") {
		t.Errorf("warn entry missing from output: %q", out)
	}
}

func TestNewWithWriter_File(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "sobel.log")
	logger := NewWithWriter(Options{Level: "debug", File: path}, zapcore.AddSync(&console))

	logger.Debug("tool call", zap.String("tool", "image_sobel"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"tool":"image_sobel"`) {
		t.Errorf("log file missing JSON field: %q", data)
	}
	if !strings.Contains(console.String(), "tool call") {
		t.Error("console output missing entry")
	}
}
