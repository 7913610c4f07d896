// Package confloader provides configuration loading mechanism.
//
// This package implements a configuration loader on top of koanf.
//
// Features:
//
//   - Multiple Sources: defaults, YAML files, environment variables, flag maps
//   - .env files loaded into the process environment before env lookup
//   - Watch Support: callbacks when the config file changes on disk
//   - Type Safety: Unmarshaling into typed structs
//
// Priority (highest to lowest):
//
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration files
//  4. Default values
package confloader
