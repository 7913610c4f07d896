// Package logger provides structured logging for redislite.
//
// This package wraps log/slog:
//
//   - logger.go: Logger interface, configuration and the global level
//   - redact.go: Stored-payload and secret redaction
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering, adjustable at runtime
//   - Automatic masking of value payloads and secrets
package logger
