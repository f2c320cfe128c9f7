package rank

import (
	"github.com/matchrank/matchrank/pkg/graph"
)

// Summary describes the shape of one partition's graph, for run logs
// and the stats endpoint.
type Summary struct {
	Nodes    int     `json:"nodes"`
	Edges    int     `json:"edges"`
	Matches  int     `json:"matches"`
	Dangling int     `json:"dangling"`
	Density  float64 `json:"density"`
	MaxIn    string  `json:"max_in_team,omitempty"`  // team with highest incoming weight
	MaxOut   string  `json:"max_out_team,omitempty"` // team with highest outgoing weight
}

// Summarize computes size and degree statistics for a graph.
func Summarize(g *graph.Graph) Summary {
	stats := g.GetStatistics()
	s := Summary{
		Nodes:    int(stats.NodeCount),
		Edges:    int(stats.EdgeCount),
		Matches:  int(stats.MatchCount),
		Dangling: g.DanglingCount(),
	}

	if s.Nodes > 1 {
		s.Density = float64(s.Edges) / float64(s.Nodes*(s.Nodes-1))
	}

	maxIn, maxOut := 0.0, 0.0
	for _, id := range g.Nodes() {
		inWeight := 0.0
		for _, nb := range g.InNeighbors(id) {
			inWeight += nb.Weight
		}
		name, err := g.NodeName(id)
		if err != nil {
			continue
		}
		if inWeight > maxIn {
			maxIn = inWeight
			s.MaxIn = name
		}
		if out := g.OutWeight(id); out > maxOut {
			maxOut = out
			s.MaxOut = name
		}
	}

	return s
}
