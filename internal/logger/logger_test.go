package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %s, want %s", tt.level, got, tt.expected)
		}
	}
}

func TestLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug, "")

	l.Info("registry loaded")

	output := buf.String()
	if !strings.Contains(output, "INFO") {
		t.Errorf("expected output to contain 'INFO', got %q", output)
	}
	if !strings.Contains(output, "registry loaded") {
		t.Errorf("expected output to contain message, got %q", output)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelWarn, "")

	l.Debug("debug message")
	l.Info("info message")
	l.Warn("warn message")
	l.Error("error message")

	output := buf.String()

	if strings.Contains(output, "debug message") {
		t.Error("debug message should be filtered")
	}
	if strings.Contains(output, "info message") {
		t.Error("info message should be filtered")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("warn message should be logged")
	}
	if !strings.Contains(output, "error message") {
		t.Error("error message should be logged")
	}
}

func TestLoggerPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelDebug, "loop")

	l.Info("round complete")

	if !strings.Contains(buf.String(), "[loop]") {
		t.Errorf("expected prefixed output, got %q", buf.String())
	}
}

func TestSetLevelFromString(t *testing.T) {
	defer SetLevel(LevelInfo)

	SetLevelFromString("debug")
	if !Enabled(LevelDebug) {
		t.Error("debug should be enabled after SetLevelFromString(debug)")
	}

	SetLevelFromString("error")
	if Enabled(LevelWarn) {
		t.Error("warn should be disabled after SetLevelFromString(error)")
	}

	// Unknown strings leave the level unchanged
	SetLevelFromString("verbose")
	if Enabled(LevelWarn) {
		t.Error("unknown level string should not change the level")
	}
}
