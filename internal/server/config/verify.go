package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server); err != nil {
		return err
	}
	if err := verifyRDB(&cfg.RDB); err != nil {
		return err
	}
	if cfg.Storage.ActiveExpireInterval < 0 {
		return errors.New("storage.active_expire_interval must not be negative")
	}
	return verifyLog(&cfg.Log)
}

func verifyServer(cfg *ServerSection) error {
	if _, _, err := net.SplitHostPort(cfg.Redis.Addr); err != nil {
		return fmt.Errorf("server.redis.addr %q: %w", cfg.Redis.Addr, err)
	}
	if cfg.Redis.ReadChunkSize < 16 {
		return fmt.Errorf("server.redis.read_chunk_size must be at least 16, got %d", cfg.Redis.ReadChunkSize)
	}
	if cfg.Redis.RateLimit < 0 {
		return errors.New("server.redis.rate_limit must not be negative")
	}
	if cfg.Metrics.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Metrics.Addr); err != nil {
			return fmt.Errorf("server.metrics.addr %q: %w", cfg.Metrics.Addr, err)
		}
	}
	return nil
}

func verifyRDB(cfg *RDBSection) error {
	if cfg.Dir == "" {
		return errors.New("rdb.dir is required")
	}
	if cfg.DBFilename == "" {
		return errors.New("rdb.dbfilename is required")
	}
	if strings.ContainsAny(cfg.DBFilename, `/\`) {
		return fmt.Errorf("rdb.dbfilename %q must be a file name, not a path", cfg.DBFilename)
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	switch strings.ToLower(cfg.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}
