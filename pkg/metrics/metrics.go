package metrics

import (
	"time"
)

// RecordLoad records the outcome of one dataset load.
func (r *Registry) RecordLoad(loaded int, skippedByReason map[string]int) {
	r.MatchesLoadedTotal.Add(float64(loaded))
	for reason, count := range skippedByReason {
		r.RowsSkippedTotal.WithLabelValues(reason).Add(float64(count))
	}
}

// RecordGraph records the size of one partition's graph.
func (r *Registry) RecordGraph(partition string, nodes, edges, dangling int) {
	r.GraphNodes.WithLabelValues(partition).Set(float64(nodes))
	r.GraphEdges.WithLabelValues(partition).Set(float64(edges))
	r.GraphDangling.WithLabelValues(partition).Set(float64(dangling))
}

// RecordPageRank records one PageRank run over a partition.
func (r *Registry) RecordPageRank(partition string, iterations int, converged bool, duration time.Duration) {
	r.PageRankIterations.WithLabelValues(partition).Observe(float64(iterations))
	r.PageRankDuration.WithLabelValues(partition).Observe(duration.Seconds())

	status := "converged"
	if !converged {
		status = "approximate"
	}
	r.PageRankRunsTotal.WithLabelValues(partition, status).Inc()
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
