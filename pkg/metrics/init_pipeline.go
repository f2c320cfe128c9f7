package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initPipelineMetrics() {
	r.MatchesLoadedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "matchrank_matches_loaded_total",
			Help: "Total number of match rows loaded from the dataset",
		},
	)

	r.RowsSkippedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchrank_rows_skipped_total",
			Help: "Total number of malformed match rows skipped during load",
		},
		[]string{"reason"},
	)

	r.GraphNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "matchrank_graph_nodes",
			Help: "Number of team nodes in the partition graph",
		},
		[]string{"partition"},
	)

	r.GraphEdges = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "matchrank_graph_edges",
			Help: "Number of directed edges in the partition graph",
		},
		[]string{"partition"},
	)

	r.GraphDangling = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "matchrank_graph_dangling_nodes",
			Help: "Number of nodes with zero outgoing weight in the partition graph",
		},
		[]string{"partition"},
	)

	r.PageRankIterations = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchrank_pagerank_iterations",
			Help:    "Number of power iterations per PageRank run",
			Buckets: []float64{5, 10, 20, 40, 60, 80, 100},
		},
		[]string{"partition"},
	)

	r.PageRankDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "matchrank_pagerank_duration_seconds",
			Help:    "PageRank run duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"partition"},
	)

	r.PageRankRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "matchrank_pagerank_runs_total",
			Help: "PageRank runs by partition and convergence status",
		},
		[]string{"partition", "status"},
	)
}
