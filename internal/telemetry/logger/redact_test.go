package logger

import (
	"log/slog"
	"testing"
)

func TestRedact_PayloadKeys(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.Info("set", "key", "user:1", "value", "s3cr3t payload", "data", []byte("raw"), "size", 14)

	entry := decodeEntry(t, buf)
	if entry["key"] != "user:1" {
		t.Errorf("key = %v, keys are not redacted", entry["key"])
	}
	if entry["value"] != redactedValue {
		t.Errorf("value = %v, want redacted", entry["value"])
	}
	if entry["data"] != redactedValue {
		t.Errorf("data = %v, want redacted", entry["data"])
	}
	if entry["size"] != float64(14) {
		t.Errorf("size = %v", entry["size"])
	}
}

func TestRedact_SecretPatterns(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.Info("config", "db_password", "pw", "client_secret", "xyz")

	entry := decodeEntry(t, buf)
	if entry["db_password"] != redactedValue || entry["client_secret"] != redactedValue {
		t.Errorf("entry = %v", entry)
	}
}

func TestRedact_EmptyStringKept(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.Info("set", "value", "")

	entry := decodeEntry(t, buf)
	if entry["value"] != "" {
		t.Errorf("value = %v, want empty string", entry["value"])
	}
}

func TestRedact_Groups(t *testing.T) {
	l, buf := newJSONLogger(t, "info")

	l.Info("cmd", slog.Group("args", slog.String("key", "k"), slog.String("value", "v")))

	entry := decodeEntry(t, buf)
	args, ok := entry["args"].(map[string]any)
	if !ok {
		t.Fatalf("args = %v", entry["args"])
	}
	if args["key"] != "k" || args["value"] != redactedValue {
		t.Errorf("args = %v", args)
	}
}

func TestIsSensitiveKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"value", true},
		{"Value", true},
		{"data", true},
		{"password", true},
		{"api_secret", true},
		{"key", false},
		{"value_len", false},
		{"database", false},
		{"conn_id", false},
	}

	for _, tt := range tests {
		if got := IsSensitiveKey(tt.key); got != tt.want {
			t.Errorf("IsSensitiveKey(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
