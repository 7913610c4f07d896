package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/yndnr/redislite/internal/infra/buildinfo"
)

// Status is the document served by /health.
type Status struct {
	Keys        int    `json:"keys"`
	Connections int    `json:"connections"`
	Snapshot    string `json:"snapshot"`
}

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Metrics serves /metrics. Nil disables the route.
	Metrics http.Handler

	// Ready reports whether the Redis listener is accepting connections.
	Ready func() bool

	// Status fills the /health document.
	Status func() Status

	Logger *slog.Logger
}

// NewRouter creates the admin routes wrapped in the middleware chain.
func NewRouter(cfg *RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		}
		if cfg.Status != nil {
			body["store"] = cfg.Status()
		}
		writeJSON(w, http.StatusOK, body)
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if cfg.Ready != nil && !cfg.Ready() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, buildinfo.Get())
	})

	return Chain(mux,
		RequestID(),
		AccessLog(logger),
		Recover(logger),
	)
}
