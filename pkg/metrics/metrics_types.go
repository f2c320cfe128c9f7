// Package metrics exposes Prometheus metrics for the ranking pipeline
// and the rankings API.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Pipeline metrics
	MatchesLoadedTotal prometheus.Counter
	RowsSkippedTotal   *prometheus.CounterVec
	GraphNodes         *prometheus.GaugeVec
	GraphEdges         *prometheus.GaugeVec
	GraphDangling      *prometheus.GaugeVec
	PageRankIterations *prometheus.HistogramVec
	PageRankDuration   *prometheus.HistogramVec
	PageRankRunsTotal  *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initPipelineMetrics()
	r.initHTTPMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
