package logger

import (
	"log/slog"
	"strings"
)

// Attribute names whose values are never written to logs. Stored payloads
// travel under "value" and "data".
var sensitiveKeys = []string{
	"value",
	"data",
}

// Key fragments that mark an attribute as a secret.
var sensitiveKeyPatterns = []string{
	"password",
	"secret",
}

// redactedValue is the placeholder for redacted sensitive data.
const redactedValue = "***REDACTED***"

// redactSensitive redacts the attribute if its key marks it as sensitive.
// Groups are walked recursively.
func redactSensitive(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		newAttrs := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			newAttrs[i] = redactSensitive(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(newAttrs...)}
	}

	if IsSensitiveKey(a.Key) {
		return redactAttr(a)
	}
	return a
}

// redactAttr returns a redacted version of the attribute. Empty strings are
// kept so "no value" stays visible.
func redactAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindString && a.Value.String() == "" {
		return a
	}
	return slog.String(a.Key, redactedValue)
}

// IsSensitiveKey checks if an attribute name marks sensitive content.
func IsSensitiveKey(key string) bool {
	keyLower := strings.ToLower(key)
	for _, k := range sensitiveKeys {
		if keyLower == k {
			return true
		}
	}
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(keyLower, pattern) {
			return true
		}
	}
	return false
}
