// Package metrics exposes resolution counters through a private Prometheus registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector manages the metrics of the address finder
type Collector struct {
	resolutions   *prometheus.CounterVec
	duplicateKeys prometheus.Counter
	lookupSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// NewCollector creates a collector registered on its own registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,

		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "geocoder_block_resolutions_total",
			Help: "Block/residential resolutions by outcome",
		}, []string{"outcome"}),

		duplicateKeys: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "geocoder_duplicate_section_keys_total",
			Help: "Residential rows that overwrote an earlier row with the same section key",
		}),

		lookupSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "geocoder_store_lookup_seconds",
			Help:    "Reference store lookup latency",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"lookup"}),
	}

	registry.MustRegister(c.resolutions, c.duplicateKeys, c.lookupSeconds)
	return c
}

// ObserveResolution counts one finder outcome.
func (c *Collector) ObserveResolution(outcome string) {
	if c == nil {
		return
	}
	c.resolutions.WithLabelValues(outcome).Inc()
}

// ObserveDuplicateKey counts one overwritten section key.
func (c *Collector) ObserveDuplicateKey() {
	if c == nil {
		return
	}
	c.duplicateKeys.Inc()
}

// ObserveLookup records the duration of a reference store lookup.
func (c *Collector) ObserveLookup(lookup string, d time.Duration) {
	if c == nil {
		return
	}
	c.lookupSeconds.WithLabelValues(lookup).Observe(d.Seconds())
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
