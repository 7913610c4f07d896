package metric

import "github.com/prometheus/client_golang/prometheus"

// StoreStats is the view of the store the collector reads.
type StoreStats interface {
	// Len returns the number of resident entries, expired ones included.
	Len() int
}

// Collector reports live store statistics at scrape time.
type Collector struct {
	store StoreStats
	keys  *prometheus.Desc
}

// NewCollector creates a collector for the given store.
func NewCollector(store StoreStats) *Collector {
	return &Collector{
		store: store,
		keys: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "store", "keys_resident"),
			"Entries held in the store, including expired ones not yet overwritten",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.keys
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.keys, prometheus.GaugeValue, float64(c.store.Len()))
}
