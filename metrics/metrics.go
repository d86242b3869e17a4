// Package metrics exports str8 allocation activity to Prometheus.
//
// Metrics:
//   - str8_alloc_requests_total{allocator} - buffer requests
//   - str8_alloc_bytes_total{allocator} - bytes successfully handed out
//   - str8_alloc_failures_total{allocator} - requests that returned an error
//   - str8_arena_bytes_in_use{arena} - bytes carved from an arena
//   - str8_arena_capacity_bytes{arena} - total chunk bytes of an arena
//   - str8_arena_limit_bytes{arena} - arena budget, 0 when unbounded
//   - str8_arena_chunks{arena} - number of chunks
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pavanmanishd/str8"
)

// Allocator wraps a str8.Allocator and counts its traffic.
type Allocator struct {
	inner    str8.Allocator
	requests prometheus.Counter
	bytes    prometheus.Counter
	failures prometheus.Counter
}

var _ str8.Allocator = (*Allocator)(nil)

// NewAllocator registers counters labelled with name on reg and returns an
// instrumented allocator delegating to inner. A nil inner uses
// str8.DefaultAllocator.
func NewAllocator(name string, inner str8.Allocator, reg prometheus.Registerer) *Allocator {
	if inner == nil {
		inner = str8.DefaultAllocator
	}
	factory := promauto.With(reg)
	labels := prometheus.Labels{"allocator": name}
	return &Allocator{
		inner: inner,
		requests: factory.NewCounter(prometheus.CounterOpts{
			Name:        "str8_alloc_requests_total",
			Help:        "Total number of buffer allocation requests",
			ConstLabels: labels,
		}),
		bytes: factory.NewCounter(prometheus.CounterOpts{
			Name:        "str8_alloc_bytes_total",
			Help:        "Total number of bytes handed out to strings",
			ConstLabels: labels,
		}),
		failures: factory.NewCounter(prometheus.CounterOpts{
			Name:        "str8_alloc_failures_total",
			Help:        "Total number of failed allocation requests",
			ConstLabels: labels,
		}),
	}
}

// AllocBytes implements str8.Allocator.
func (a *Allocator) AllocBytes(n int) ([]byte, error) {
	a.requests.Inc()
	b, err := a.inner.AllocBytes(n)
	if err != nil {
		a.failures.Inc()
		return nil, err
	}
	a.bytes.Add(float64(len(b)))
	return b, nil
}

// ArenaSource is satisfied by *str8.Arena and *str8.SafeArena.
type ArenaSource interface {
	Metrics() str8.ArenaMetrics
}

// ArenaCollector reports an arena's occupancy at scrape time.
type ArenaCollector struct {
	source   ArenaSource
	inUse    *prometheus.Desc
	capacity *prometheus.Desc
	limit    *prometheus.Desc
	chunks   *prometheus.Desc
}

var _ prometheus.Collector = (*ArenaCollector)(nil)

// NewArenaCollector returns a collector for source labelled arena=name.
// Only collect from a plain *str8.Arena on the goroutine that owns it;
// share a *str8.SafeArena otherwise.
func NewArenaCollector(name string, source ArenaSource) *ArenaCollector {
	labels := prometheus.Labels{"arena": name}
	return &ArenaCollector{
		source:   source,
		inUse:    prometheus.NewDesc("str8_arena_bytes_in_use", "Bytes carved from the arena", nil, labels),
		capacity: prometheus.NewDesc("str8_arena_capacity_bytes", "Total chunk bytes held by the arena", nil, labels),
		limit:    prometheus.NewDesc("str8_arena_limit_bytes", "Arena byte budget, 0 when unbounded", nil, labels),
		chunks:   prometheus.NewDesc("str8_arena_chunks", "Number of chunks held by the arena", nil, labels),
	}
}

// Describe implements prometheus.Collector.
func (c *ArenaCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.inUse
	ch <- c.capacity
	ch <- c.limit
	ch <- c.chunks
}

// Collect implements prometheus.Collector.
func (c *ArenaCollector) Collect(ch chan<- prometheus.Metric) {
	m := c.source.Metrics()
	ch <- prometheus.MustNewConstMetric(c.inUse, prometheus.GaugeValue, float64(m.SizeInUse))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(m.Capacity))
	ch <- prometheus.MustNewConstMetric(c.limit, prometheus.GaugeValue, float64(m.Limit))
	ch <- prometheus.MustNewConstMetric(c.chunks, prometheus.GaugeValue, float64(m.NumChunks))
}
