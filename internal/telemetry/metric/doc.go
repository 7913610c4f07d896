// Package metric provides Prometheus metrics for redislite.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry and HTTP handler
//   - collector.go: Collector reading live store statistics
//
// Metrics include connection gauges and counters, commands by name, errors
// by kind, and key counts for the store and the loaded snapshot.
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
