package config

import "time"

// ServerConfig is the root configuration for redislite-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	RDB     RDBSection     `koanf:"rdb"`
	Storage StorageSection `koanf:"storage"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis   RedisConfig   `koanf:"redis"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// RedisConfig configures the Redis protocol server.
type RedisConfig struct {
	Addr string `koanf:"addr"`

	// ReadChunkSize is the size of the buffer used for one socket read.
	ReadChunkSize int `koanf:"read_chunk_size"`

	// Framed enables length-aware buffering across reads.
	Framed bool `koanf:"framed"`

	// RateLimit is the per-connection command rate in commands/s. 0 disables it.
	RateLimit float64 `koanf:"rate_limit"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the HTTP listen address for /metrics. Empty disables it.
	Addr string `koanf:"addr"`
}

// RDBSection locates the snapshot file loaded at startup.
type RDBSection struct {
	Dir        string `koanf:"dir"`
	DBFilename string `koanf:"dbfilename"`
}

// StorageSection configures the in-memory store.
type StorageSection struct {
	// ActiveExpireInterval runs a background sweep of expired keys.
	// 0 keeps expiration purely lazy.
	ActiveExpireInterval time.Duration `koanf:"active_expire_interval"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
