// Package rank implements the PageRank power iteration over a match graph.
package rank

import (
	"container/heap"
	"errors"
	"math"
	"sort"

	"github.com/matchrank/matchrank/pkg/graph"
)

// Validation errors for Options.
var (
	ErrInvalidDamping    = errors.New("damping factor must be in [0, 1)")
	ErrInvalidTolerance  = errors.New("tolerance must be positive")
	ErrInvalidIterations = errors.New("max iterations must be at least 1")
)

// Options configures the PageRank iteration.
type Options struct {
	DampingFactor float64 // Usually 0.85
	MaxIterations int
	Tolerance     float64 // L1 convergence threshold
}

// DefaultOptions returns the default PageRank configuration.
func DefaultOptions() Options {
	return Options{
		DampingFactor: 0.85,
		MaxIterations: 100,
		Tolerance:     1e-6,
	}
}

func (o Options) validate() error {
	if o.DampingFactor < 0 || o.DampingFactor >= 1 {
		return ErrInvalidDamping
	}
	if o.Tolerance <= 0 {
		return ErrInvalidTolerance
	}
	if o.MaxIterations < 1 {
		return ErrInvalidIterations
	}
	return nil
}

// Result contains PageRank scores for all nodes of one graph.
//
// When Converged is false the scores are the best estimate after
// MaxIterations and must be treated as approximate, not exact.
type Result struct {
	Scores     map[uint64]float64 // Node ID -> PageRank score
	Iterations int                // Number of iterations performed
	Converged  bool               // Whether the iteration reached Tolerance
}

// TeamScore is a team with its rank score.
type TeamScore struct {
	Team  string
	Score float64
}

// PageRank computes scores for every node in the graph.
//
// Each iteration applies the standard weighted update
//
//	rank(v) = (1-d)/N + d * (dangling/N + sum_u rank(u) * w(u,v)/outWeight(u))
//
// where dangling is the summed rank of nodes with zero outgoing weight,
// redistributed uniformly. Rank mass is therefore conserved on every
// iteration; the final normalization only absorbs floating-point drift.
func PageRank(g *graph.Graph, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	nodes := g.Nodes()
	n := len(nodes)
	if n == 0 {
		return &Result{
			Scores:    make(map[uint64]float64),
			Converged: true,
		}, nil
	}

	scores := make(map[uint64]float64, n)
	newScores := make(map[uint64]float64, n)
	initial := 1.0 / float64(n)
	for _, id := range nodes {
		scores[id] = initial
	}

	converged := false
	iterations := 0

	for iterations < opts.MaxIterations {
		iterations++

		// Rank held by dangling nodes, spread uniformly before the step
		danglingMass := 0.0
		for _, id := range nodes {
			if g.OutWeight(id) == 0 {
				danglingMass += scores[id]
			}
		}

		base := (1.0-opts.DampingFactor)/float64(n) +
			opts.DampingFactor*danglingMass/float64(n)

		for _, id := range nodes {
			score := base
			for _, nb := range g.InNeighbors(id) {
				if outWeight := g.OutWeight(nb.ID); outWeight > 0 {
					score += opts.DampingFactor * scores[nb.ID] * nb.Weight / outWeight
				}
			}
			newScores[id] = score
		}

		// L1 distance between successive rank vectors
		delta := 0.0
		for _, id := range nodes {
			delta += math.Abs(newScores[id] - scores[id])
		}

		scores, newScores = newScores, scores

		if delta < opts.Tolerance {
			converged = true
			break
		}
	}

	// Normalize to sum exactly to 1. The sum is accumulated in node-ID
	// order: float addition is not associative, so summing in map order
	// would make the rounded result vary between runs.
	sum := 0.0
	for _, id := range nodes {
		sum += scores[id]
	}
	if sum > 0 {
		for _, id := range nodes {
			scores[id] /= sum
		}
	}

	return &Result{
		Scores:     scores,
		Iterations: iterations,
		Converged:  converged,
	}, nil
}

// Score returns the PageRank score for a specific node.
func (r *Result) Score(nodeID uint64) float64 {
	return r.Scores[nodeID]
}

// Ranked resolves scores to team names, sorted by score descending with
// team name ascending as the tie-break, so equal scores always come out
// in the same order.
func (r *Result) Ranked(g *graph.Graph) []TeamScore {
	ranked := make([]TeamScore, 0, len(r.Scores))
	for _, id := range g.Nodes() {
		score, ok := r.Scores[id]
		if !ok {
			continue
		}
		name, err := g.NodeName(id)
		if err != nil {
			continue
		}
		ranked = append(ranked, TeamScore{Team: name, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Team < ranked[j].Team
	})

	return ranked
}

// teamScoreHeap implements a min-heap over TeamScore. Keeping the minimum
// at the root lets TopTeams hold at most n elements while scanning all
// scores, O(N log n) instead of sorting everything.
type teamScoreHeap []TeamScore

func (h teamScoreHeap) Len() int { return len(h) }
func (h teamScoreHeap) Less(i, j int) bool {
	if h[i].Score != h[j].Score {
		return h[i].Score < h[j].Score
	}
	// Higher name sorts lower so the tie-break matches Ranked
	return h[i].Team > h[j].Team
}
func (h teamScoreHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *teamScoreHeap) Push(x any) {
	*h = append(*h, x.(TeamScore))
}

func (h *teamScoreHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

func (h teamScoreHeap) better(s TeamScore) bool {
	if s.Score != h[0].Score {
		return s.Score > h[0].Score
	}
	return s.Team < h[0].Team
}

// TopTeams returns the n highest-ranked teams, ordered like Ranked.
func (r *Result) TopTeams(g *graph.Graph, n int) []TeamScore {
	if n <= 0 {
		return nil
	}

	h := make(teamScoreHeap, 0, n)
	heap.Init(&h)

	for id, score := range r.Scores {
		name, err := g.NodeName(id)
		if err != nil {
			continue
		}
		ts := TeamScore{Team: name, Score: score}

		if h.Len() < n {
			heap.Push(&h, ts)
		} else if h.better(ts) {
			heap.Pop(&h)
			heap.Push(&h, ts)
		}
	}

	result := make([]TeamScore, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(TeamScore)
	}
	return result
}
