package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redislite/internal/infra/buildinfo"
	"github.com/yndnr/redislite/internal/infra/confloader"
	"github.com/yndnr/redislite/internal/infra/shutdown"
	"github.com/yndnr/redislite/internal/server/config"
	"github.com/yndnr/redislite/internal/server/httpserver"
	"github.com/yndnr/redislite/internal/server/redisserver"
	"github.com/yndnr/redislite/internal/storage/memory"
	"github.com/yndnr/redislite/internal/storage/snapshot"
	"github.com/yndnr/redislite/internal/telemetry/logger"
	"github.com/yndnr/redislite/internal/telemetry/metric"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "redislite-server",
		Usage:   "Minimal Redis-compatible server",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "Path to YAML configuration file"},
			&cli.StringFlag{Name: "dir", Usage: "Directory holding the RDB snapshot"},
			&cli.StringFlag{Name: "dbfilename", Usage: "RDB snapshot file name"},
			&cli.IntFlag{Name: "port", Usage: "TCP port to listen on"},
			&cli.StringFlag{Name: "bind", Usage: "Address to bind"},
			&cli.StringFlag{Name: "log-level", Usage: "Log level: debug, info, warn, error"},
			&cli.StringFlag{Name: "metrics-addr", Usage: "Serve /metrics, /health and /ready on this address"},
			&cli.StringSliceFlag{Name: "env-file", Usage: "dotenv files to load", Value: cli.NewStringSlice(".env")},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if _, err := confloader.LoadDotEnv(c.StringSlice("env-file")...); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	slogger := log.Slog()

	info := buildinfo.Get()
	log.Info("starting redislite-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", c.String("config"))

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	reg := metric.NewRegistry()
	store := memory.New()

	params := cfg.RDB.Params()
	res := snapshot.Restore(store, params.Path(), slogger)
	reg.RecordSnapshot(string(res.Outcome), res.Keys)

	if err := reg.Register(metric.NewCollector(store)); err != nil {
		return fmt.Errorf("register store collector: %w", err)
	}

	srv := redisserver.New(redisserver.ConfigFrom(cfg.Server.Redis), store, params, slogger,
		redisserver.WithMetrics(reg))
	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("start redis server: %w", err)
	}

	handler := shutdown.NewHandler(shutdownTimeout, slogger)

	if path := c.String("config"); path != "" {
		w, err := watchLogLevel(path, slogger)
		if err != nil {
			log.Warn("config watcher disabled", "error", err)
		} else {
			handler.OnShutdown("config watcher", func(context.Context) error { return w.Stop() })
		}
	}

	if addr := cfg.Server.Metrics.Addr; addr != "" {
		router := httpserver.NewRouter(&httpserver.RouterConfig{
			Metrics: reg.Handler(),
			Ready:   srv.Running,
			Status: func() httpserver.Status {
				return httpserver.Status{
					Keys:        store.Len(),
					Connections: srv.ActiveConns(),
					Snapshot:    string(res.Outcome),
				}
			},
			Logger: slogger,
		})
		admin := httpserver.New(addr, router, slogger)
		if err := admin.Start(); err != nil {
			_ = srv.Shutdown(context.Background())
			return fmt.Errorf("start admin http server: %w", err)
		}
		handler.OnShutdown("admin http server", admin.Shutdown)
	}

	if interval := cfg.Storage.ActiveExpireInterval; interval > 0 {
		sweepCtx, stopSweep := context.WithCancel(ctx)
		sw := memory.NewSweeper(store, interval, slogger)
		sw.OnSwept(reg.AddExpiredSwept)
		done := make(chan struct{})
		go func() {
			defer close(done)
			sw.Run(sweepCtx)
		}()
		log.Info("active expiration enabled", "interval", interval.String())
		handler.OnShutdown("expiry sweeper", func(ctx context.Context) error {
			stopSweep()
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	handler.OnShutdown("redis server", srv.Shutdown)

	log.Info("server started", "address", srv.Addr().String())
	if err := handler.Wait(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig layers defaults, file, environment and flags, then normalizes
// and validates the result.
func loadConfig(c *cli.Context) (*config.ServerConfig, error) {
	opts := []confloader.Option{confloader.WithDefaults(config.DefaultMap())}
	if path := c.String("config"); path != "" {
		opts = append(opts, confloader.WithConfigFile(path))
	}
	loader := confloader.NewLoader(opts...)

	cfg := config.Default()
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	overrides, err := flagOverrides(c, cfg.Server.Redis.Addr)
	if err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := loader.LoadMap(overrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	cfg = config.Sanitize(cfg)
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// flagOverrides maps explicitly set flags to config keys. --bind and --port
// replace one half of the configured redis address each.
func flagOverrides(c *cli.Context, addr string) (map[string]any, error) {
	out := make(map[string]any)

	if c.IsSet("dir") {
		out["rdb.dir"] = c.String("dir")
	}
	if c.IsSet("dbfilename") {
		out["rdb.dbfilename"] = c.String("dbfilename")
	}
	if c.IsSet("log-level") {
		out["log.level"] = c.String("log-level")
	}
	if c.IsSet("metrics-addr") {
		out["server.metrics.addr"] = c.String("metrics-addr")
	}

	if c.IsSet("bind") || c.IsSet("port") {
		host, port, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, fmt.Errorf("server.redis.addr %q: %w", addr, err)
		}
		if c.IsSet("bind") {
			host = c.String("bind")
		}
		if c.IsSet("port") {
			p := c.Int("port")
			if p < 0 || p > 65535 {
				return nil, fmt.Errorf("port %d out of range", p)
			}
			port = strconv.Itoa(p)
		}
		out["server.redis.addr"] = net.JoinHostPort(host, port)
	}

	return out, nil
}

// watchLogLevel re-reads the config file on change and applies log.level.
func watchLogLevel(path string, log *slog.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(string) {
		level, err := readLogLevel(path)
		if err != nil {
			log.Warn("config reload failed", "path", path, "error", err)
			return
		}
		if level == "" || level == logger.GetLevel() {
			return
		}
		logger.SetLevel(level)
		log.Info("log level changed", "level", level)
	})
	w.StartAsync()
	return w, nil
}

// readLogLevel returns the log.level set by the file and environment.
func readLogLevel(path string) (string, error) {
	l := confloader.NewLoader(confloader.WithConfigFile(path))
	var cfg config.ServerConfig
	if err := l.Load(&cfg); err != nil {
		return "", err
	}
	if cfg.Log.Level != "" && !logger.ValidLevel(cfg.Log.Level) {
		return "", fmt.Errorf("invalid log.level %q", cfg.Log.Level)
	}
	return cfg.Log.Level, nil
}
