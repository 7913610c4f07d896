package confloader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yndnr/redislite/internal/server/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

// ============================================================================
// Loader
// ============================================================================

func TestNewLoader(t *testing.T) {
	l := NewLoader()
	if l.envPrefix != DefaultEnvPrefix {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, DefaultEnvPrefix)
	}
	if l.IsLoaded() {
		t.Error("IsLoaded() should be false before Load()")
	}

	l = NewLoader(WithEnvPrefix("TEST_"), WithConfigFile("/etc/redislite.yaml"))
	if l.envPrefix != "TEST_" {
		t.Errorf("envPrefix = %q, want %q", l.envPrefix, "TEST_")
	}
	if l.filePath != "/etc/redislite.yaml" {
		t.Errorf("filePath = %q, want %q", l.filePath, "/etc/redislite.yaml")
	}
}

func TestLoader_Load_Defaults(t *testing.T) {
	l := NewLoader(WithDefaults(config.DefaultMap()))

	var cfg config.ServerConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !l.IsLoaded() {
		t.Error("IsLoaded() should be true after Load()")
	}

	want := config.Default()
	if cfg.Server.Redis != want.Server.Redis {
		t.Errorf("Redis = %+v, want %+v", cfg.Server.Redis, want.Server.Redis)
	}
	if cfg.RDB != want.RDB {
		t.Errorf("RDB = %+v, want %+v", cfg.RDB, want.RDB)
	}
	if cfg.Log != want.Log {
		t.Errorf("Log = %+v, want %+v", cfg.Log, want.Log)
	}
}

func TestLoader_Load_File(t *testing.T) {
	path := writeFile(t, "redislite.yaml", `
server:
  redis:
    addr: "0.0.0.0:7000"
    read_chunk_size: 4096
    framed: true
rdb:
  dir: /tmp/redis-files
  dbfilename: snap.rdb
storage:
  active_expire_interval: 250ms
log:
  level: debug
`)

	l := NewLoader(WithConfigFile(path), WithDefaults(config.DefaultMap()))
	var cfg config.ServerConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Redis.Addr != "0.0.0.0:7000" {
		t.Errorf("Addr = %q, want %q", cfg.Server.Redis.Addr, "0.0.0.0:7000")
	}
	if cfg.Server.Redis.ReadChunkSize != 4096 {
		t.Errorf("ReadChunkSize = %d, want 4096", cfg.Server.Redis.ReadChunkSize)
	}
	if !cfg.Server.Redis.Framed {
		t.Error("Framed should be true")
	}
	if cfg.RDB.Dir != "/tmp/redis-files" || cfg.RDB.DBFilename != "snap.rdb" {
		t.Errorf("RDB = %+v", cfg.RDB)
	}
	if cfg.Storage.ActiveExpireInterval != 250*time.Millisecond {
		t.Errorf("ActiveExpireInterval = %v, want 250ms", cfg.Storage.ActiveExpireInterval)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	// Untouched by the file.
	if cfg.Log.Format != config.DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, config.DefaultLogFormat)
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	l := NewLoader(WithConfigFile(filepath.Join(t.TempDir(), "missing.yaml")))
	var cfg config.ServerConfig
	if err := l.Load(&cfg); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoader_Load_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "server: [unclosed\n")
	l := NewLoader(WithConfigFile(path))
	var cfg config.ServerConfig
	if err := l.Load(&cfg); err == nil {
		t.Error("Load() expected error for invalid YAML")
	}
}

// ============================================================================
// Environment
// ============================================================================

func TestLoader_LoadEnv_KnownKeys(t *testing.T) {
	tests := []struct {
		env   string
		value string
		key   string
	}{
		{"REDISLITE_SERVER_REDIS_READ_CHUNK_SIZE", "2048", "server.redis.read_chunk_size"},
		{"REDISLITE_SERVER_REDIS_RATE_LIMIT", "100", "server.redis.rate_limit"},
		{"REDISLITE_STORAGE_ACTIVE_EXPIRE_INTERVAL", "1s", "storage.active_expire_interval"},
		{"REDISLITE_RDB_DBFILENAME", "x.rdb", "rdb.dbfilename"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			l := NewLoader()
			if err := l.LoadMap(config.DefaultMap()); err != nil {
				t.Fatalf("LoadMap() error = %v", err)
			}
			if err := l.LoadEnv(); err != nil {
				t.Fatalf("LoadEnv() error = %v", err)
			}
			if got := l.GetString(tt.key); got != tt.value {
				t.Errorf("%s = %q, want %q", tt.key, got, tt.value)
			}
		})
	}
}

func TestLoader_LoadEnv_UnknownKey(t *testing.T) {
	t.Setenv("REDISLITE_EXTRA_SECTION_NAME", "v")

	l := NewLoader()
	if err := l.LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() error = %v", err)
	}
	if got := l.GetString("extra.section.name"); got != "v" {
		t.Errorf("extra.section.name = %q, want %q", got, "v")
	}
}

func TestLoader_Load_Priority(t *testing.T) {
	path := writeFile(t, "redislite.yaml", `
server:
  redis:
    addr: "from-file:6379"
rdb:
  dir: /from/file
`)
	t.Setenv("REDISLITE_SERVER_REDIS_ADDR", "from-env:6379")

	l := NewLoader(WithConfigFile(path), WithDefaults(config.DefaultMap()))
	var cfg config.ServerConfig
	if err := l.Load(&cfg); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Redis.Addr != "from-env:6379" {
		t.Errorf("Addr = %q, want env value", cfg.Server.Redis.Addr)
	}
	if cfg.RDB.Dir != "/from/file" {
		t.Errorf("Dir = %q, want file value", cfg.RDB.Dir)
	}
	if cfg.RDB.DBFilename != config.DefaultRDBDBFilename {
		t.Errorf("DBFilename = %q, want default", cfg.RDB.DBFilename)
	}
}

func TestLoader_LoadMap_FlatKeys(t *testing.T) {
	l := NewLoader()
	if err := l.LoadMap(config.DefaultMap()); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}
	if err := l.LoadMap(map[string]any{"rdb.dir": "/flags"}); err != nil {
		t.Fatalf("LoadMap() error = %v", err)
	}

	var cfg config.ServerConfig
	if err := l.Unmarshal(&cfg); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if cfg.RDB.Dir != "/flags" {
		t.Errorf("Dir = %q, want /flags", cfg.RDB.Dir)
	}
	if cfg.RDB.DBFilename != config.DefaultRDBDBFilename {
		t.Errorf("DBFilename = %q, want default", cfg.RDB.DBFilename)
	}
	if l.Get("rdb.dir") != "/flags" {
		t.Errorf("Get(rdb.dir) = %v", l.Get("rdb.dir"))
	}
	if len(l.Keys()) != len(config.DefaultMap()) {
		t.Errorf("Keys() = %d, want %d", len(l.Keys()), len(config.DefaultMap()))
	}
}

func TestMapProvider_ReadBytes(t *testing.T) {
	if _, err := mapProvider(nil).ReadBytes(); err != ErrReadBytesNotSupported {
		t.Errorf("ReadBytes() error = %v, want ErrReadBytesNotSupported", err)
	}
}

// ============================================================================
// Dotenv
// ============================================================================

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "REDISLITE_RDB_DIR=/from/dotenv\nREDISLITE_LOG_LEVEL=warn\n")
	t.Setenv("REDISLITE_RDB_DIR", "")
	os.Unsetenv("REDISLITE_RDB_DIR")
	t.Setenv("REDISLITE_LOG_LEVEL", "error")

	loaded, err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"), path)
	if err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if len(loaded) != 1 || loaded[0] != path {
		t.Errorf("loaded = %v, want [%s]", loaded, path)
	}
	if got := os.Getenv("REDISLITE_RDB_DIR"); got != "/from/dotenv" {
		t.Errorf("REDISLITE_RDB_DIR = %q, want /from/dotenv", got)
	}
	if got := os.Getenv("REDISLITE_LOG_LEVEL"); got != "error" {
		t.Errorf("REDISLITE_LOG_LEVEL = %q, existing value should win", got)
	}
}

func TestLoadDotEnv_Malformed(t *testing.T) {
	path := writeFile(t, ".env", "BAD-KEY=1\n")
	if _, err := LoadDotEnv(path); err == nil {
		t.Error("LoadDotEnv() expected error for malformed file")
	}
}
