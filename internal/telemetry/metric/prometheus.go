package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "redislite"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Connection metrics
	ConnectionsActive   prometheus.Gauge
	ConnectionsAccepted prometheus.Counter

	// Command metrics
	CommandsTotal *prometheus.CounterVec
	ErrorsTotal   *prometheus.CounterVec

	// Snapshot metrics
	SnapshotKeys prometheus.Gauge
	SnapshotLoad *prometheus.CounterVec

	// Storage metrics
	ExpiredSwept prometheus.Counter
}

// NewRegistry creates a registry with all metrics and the Go runtime and
// process collectors registered.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "connections_active",
			Help:      "Number of open client connections",
		}),
		ConnectionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "connections_accepted_total",
			Help:      "Total client connections accepted",
		}),
		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "commands_total",
			Help:      "Commands executed, by command name",
		}, []string{"command"}),
		ErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "redis",
			Name:      "errors_total",
			Help:      "Connection-terminating errors, by kind",
		}, []string{"kind"}),
		SnapshotKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "keys_loaded",
			Help:      "Keys loaded from the snapshot at startup",
		}),
		SnapshotLoad: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "snapshot",
			Name:      "loads_total",
			Help:      "Snapshot load attempts, by outcome",
		}, []string{"outcome"}),
		ExpiredSwept: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "expired_swept_total",
			Help:      "Expired keys removed by the active sweeper",
		}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.ConnectionsActive,
		r.ConnectionsAccepted,
		r.CommandsTotal,
		r.ErrorsTotal,
		r.SnapshotKeys,
		r.SnapshotLoad,
		r.ExpiredSwept,
	)
	return r
}

// Register adds extra collectors, such as a store Collector.
func (r *Registry) Register(cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := r.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Handler returns an HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ConnOpened records an accepted connection.
func (r *Registry) ConnOpened() {
	r.ConnectionsAccepted.Inc()
	r.ConnectionsActive.Inc()
}

// ConnClosed records a closed connection.
func (r *Registry) ConnClosed() {
	r.ConnectionsActive.Dec()
}

// RecordCommand counts one executed command.
func (r *Registry) RecordCommand(name string) {
	r.CommandsTotal.WithLabelValues(name).Inc()
}

// RecordError counts one connection-terminating error.
func (r *Registry) RecordError(kind string) {
	r.ErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordSnapshot records a snapshot load outcome and its key count.
func (r *Registry) RecordSnapshot(outcome string, keys int) {
	r.SnapshotLoad.WithLabelValues(outcome).Inc()
	r.SnapshotKeys.Set(float64(keys))
}

// AddExpiredSwept counts keys removed by the sweeper.
func (r *Registry) AddExpiredSwept(n int) {
	r.ExpiredSwept.Add(float64(n))
}
