package config

// Default configuration values.
const (
	DefaultRedisAddr     = "127.0.0.1:6379"
	DefaultReadChunkSize = 1024

	DefaultRDBDir        = "."
	DefaultRDBDBFilename = "dump.rdb"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr:          DefaultRedisAddr,
				ReadChunkSize: DefaultReadChunkSize,
			},
		},
		RDB: RDBSection{
			Dir:        DefaultRDBDir,
			DBFilename: DefaultRDBDBFilename,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultMap returns the defaults as flattened koanf keys.
func DefaultMap() map[string]any {
	return map[string]any{
		"server.redis.addr":              DefaultRedisAddr,
		"server.redis.read_chunk_size":   DefaultReadChunkSize,
		"server.redis.framed":            false,
		"server.redis.rate_limit":        0.0,
		"server.metrics.addr":            "",
		"rdb.dir":                        DefaultRDBDir,
		"rdb.dbfilename":                 DefaultRDBDBFilename,
		"storage.active_expire_interval": "0s",
		"log.level":                      DefaultLogLevel,
		"log.format":                     DefaultLogFormat,
	}
}
