package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func newJSONLogger(t *testing.T, level string) (Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := New(Config{Level: level, Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return l, &buf
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_Levels(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")

	tests := []struct {
		level   string
		logFunc func(string, ...any)
	}{
		{"DEBUG", l.Debug},
		{"INFO", l.Info},
		{"WARN", l.Warn},
		{"ERROR", l.Error},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("accepted connection", "remote", "127.0.0.1:50000")

			entry := decodeEntry(t, buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %v, want %s", entry["level"], tt.level)
			}
			if entry["msg"] != "accepted connection" {
				t.Errorf("msg = %v", entry["msg"])
			}
			if entry["remote"] != "127.0.0.1:50000" {
				t.Errorf("remote = %v", entry["remote"])
			}
		})
	}
}

func TestLogger_With(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.With("component", "redisserver").Info("listening")

	entry := decodeEntry(t, buf)
	if entry["component"] != "redisserver" {
		t.Errorf("component = %v", entry["component"])
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newJSONLogger(t, "error")

	l.Info("filtered")
	if buf.Len() > 0 {
		t.Error("Info should be filtered at error level")
	}

	SetLevel("debug")
	l.Info("kept")
	if buf.Len() == 0 {
		t.Error("Info should be logged after level changed to debug")
	}
	if level := GetLevel(); level != "debug" {
		t.Errorf("GetLevel() = %q, want debug", level)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		valid    bool
	}{
		{"debug", "debug", true},
		{"INFO", "info", true},
		{"warning", "warn", true},
		{"Error", "error", true},
		{"trace", "info", false},
		{"", "info", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			SetLevel(tt.input)
			if got := GetLevel(); got != tt.expected {
				t.Errorf("SetLevel(%q); GetLevel() = %q, want %q", tt.input, got, tt.expected)
			}
			if got := ValidLevel(tt.input); got != tt.valid {
				t.Errorf("ValidLevel(%q) = %v, want %v", tt.input, got, tt.valid)
			}
		})
	}
}

func TestSlog_SharesHandler(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.Slog().Info("from slog", "value", "hunter2")

	entry := decodeEntry(t, buf)
	if entry["msg"] != "from slog" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["value"] != redactedValue {
		t.Errorf("value = %v, want redacted through *slog.Logger too", entry["value"])
	}
}

func TestSetDefault(t *testing.T) {
	l, buf := newJSONLogger(t, "debug")
	prev := Default()
	SetDefault(l)
	defer SetDefault(prev)

	for name, logFunc := range map[string]func(string, ...any){
		"Debug": Debug,
		"Info":  Info,
		"Warn":  Warn,
		"Error": Error,
	} {
		buf.Reset()
		logFunc("package level")
		if buf.Len() == 0 {
			t.Errorf("%s() produced no output", name)
		}
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info("snapshot loaded", "keys", 3)

	output := buf.String()
	if !strings.Contains(output, "snapshot loaded") || !strings.Contains(output, "keys=3") {
		t.Errorf("unexpected text output: %s", output)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" || cfg.Format != "json" {
		t.Errorf("DefaultConfig() = %+v", cfg)
	}
	if cfg.Output == nil {
		t.Error("DefaultConfig().Output should not be nil")
	}
}
