// Package config provides server configuration for redislite.
//
// This package defines the server configuration structure and validation:
//
//   - spec.go: ServerConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation (addresses, sizes, enums)
//   - sanitize.go: Normalization before use and logging
//   - rdb.go: Snapshot location and CONFIG GET lookups
//
// Configuration is loaded via internal/infra/confloader and supports
// multiple sources: files, environment variables, and flags.
package config
