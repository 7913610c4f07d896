package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/redislite/internal/core/domain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Redis.Addr != DefaultRedisAddr {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Server.Redis.Addr, DefaultRedisAddr)
	}
	if cfg.Server.Redis.ReadChunkSize != DefaultReadChunkSize {
		t.Errorf("ReadChunkSize = %d, want %d", cfg.Server.Redis.ReadChunkSize, DefaultReadChunkSize)
	}
	if cfg.Server.Redis.Framed {
		t.Error("Framed should be disabled by default")
	}
	if cfg.Server.Redis.RateLimit != 0 {
		t.Error("RateLimit should be disabled by default")
	}
	if cfg.Server.Metrics.Addr != "" {
		t.Error("Metrics should be disabled by default")
	}
	if cfg.RDB.Dir != DefaultRDBDir || cfg.RDB.DBFilename != DefaultRDBDBFilename {
		t.Errorf("RDB = %+v", cfg.RDB)
	}
	if cfg.Storage.ActiveExpireInterval != 0 {
		t.Error("active expiration should be disabled by default")
	}
	if cfg.Log.Level != DefaultLogLevel || cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log = %+v", cfg.Log)
	}

	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{"valid", func(*ServerConfig) {}, ""},
		{"bad redis addr", func(c *ServerConfig) { c.Server.Redis.Addr = "localhost" }, "server.redis.addr"},
		{"small chunk", func(c *ServerConfig) { c.Server.Redis.ReadChunkSize = 4 }, "read_chunk_size"},
		{"negative rate", func(c *ServerConfig) { c.Server.Redis.RateLimit = -1 }, "rate_limit"},
		{"bad metrics addr", func(c *ServerConfig) { c.Server.Metrics.Addr = "9090" }, "server.metrics.addr"},
		{"metrics enabled", func(c *ServerConfig) { c.Server.Metrics.Addr = ":9090" }, ""},
		{"empty dir", func(c *ServerConfig) { c.RDB.Dir = "" }, "rdb.dir"},
		{"empty dbfilename", func(c *ServerConfig) { c.RDB.DBFilename = "" }, "rdb.dbfilename"},
		{"dbfilename is path", func(c *ServerConfig) { c.RDB.DBFilename = "a/dump.rdb" }, "rdb.dbfilename"},
		{"negative sweep", func(c *ServerConfig) { c.Storage.ActiveExpireInterval = -time.Second }, "active_expire_interval"},
		{"bad level", func(c *ServerConfig) { c.Log.Level = "trace" }, "log.level"},
		{"bad format", func(c *ServerConfig) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Verify() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	cfg := &ServerConfig{
		Log: LogSection{Level: " DEBUG ", Format: "JSON"},
	}

	sanitized := Sanitize(cfg)

	if cfg.Log.Level != " DEBUG " {
		t.Error("original config should not be modified")
	}
	if sanitized.Log.Level != "debug" || sanitized.Log.Format != "json" {
		t.Errorf("Log = %+v", sanitized.Log)
	}
	if sanitized.Server.Redis.Addr != DefaultRedisAddr {
		t.Errorf("Redis.Addr = %q", sanitized.Server.Redis.Addr)
	}
	if sanitized.Server.Redis.ReadChunkSize != DefaultReadChunkSize {
		t.Errorf("ReadChunkSize = %d", sanitized.Server.Redis.ReadChunkSize)
	}
	if sanitized.RDB.Dir != DefaultRDBDir || sanitized.RDB.DBFilename != DefaultRDBDBFilename {
		t.Errorf("RDB = %+v", sanitized.RDB)
	}
	if err := Verify(sanitized); err != nil {
		t.Errorf("Verify(sanitized) error = %v", err)
	}
}

// ============================================================
// RDBParams
// ============================================================

func TestRDBParams_Path(t *testing.T) {
	p := RDBSection{Dir: "/tmp/redis-files", DBFilename: "dump.rdb"}.Params()
	if got, want := p.Path(), filepath.Join("/tmp/redis-files", "dump.rdb"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestRDBParams_Lookup(t *testing.T) {
	p := RDBParams{Dir: "/tmp/redis-files/", DBFilename: "snap.rdb"}

	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"dir", "/tmp/redis-files/", false},
		{"dbfilename", "snap.rdb", false},
		{"DIR", "", true},
		{"maxmemory", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Lookup(tt.name)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Errorf("Lookup(%q) error = %v, want ErrValidation", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Lookup(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
