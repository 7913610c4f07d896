package config

import "strings"

// Sanitize returns a normalized copy of the config.
//
// Enum values are lower-cased and empty fields fall back to defaults, so the
// result is safe to log and to hand to Verify.
func Sanitize(cfg *ServerConfig) *ServerConfig {
	sanitized := *cfg

	sanitized.Log.Level = strings.ToLower(strings.TrimSpace(sanitized.Log.Level))
	sanitized.Log.Format = strings.ToLower(strings.TrimSpace(sanitized.Log.Format))
	if sanitized.Log.Level == "" {
		sanitized.Log.Level = DefaultLogLevel
	}
	if sanitized.Log.Format == "" {
		sanitized.Log.Format = DefaultLogFormat
	}

	sanitized.Server.Redis.Addr = strings.TrimSpace(sanitized.Server.Redis.Addr)
	if sanitized.Server.Redis.Addr == "" {
		sanitized.Server.Redis.Addr = DefaultRedisAddr
	}
	if sanitized.Server.Redis.ReadChunkSize == 0 {
		sanitized.Server.Redis.ReadChunkSize = DefaultReadChunkSize
	}

	if sanitized.RDB.Dir == "" {
		sanitized.RDB.Dir = DefaultRDBDir
	}
	if sanitized.RDB.DBFilename == "" {
		sanitized.RDB.DBFilename = DefaultRDBDBFilename
	}

	return &sanitized
}
