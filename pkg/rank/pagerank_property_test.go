package rank

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/matchrank/matchrank/pkg/graph"
)

// buildFromEncoded turns a flat int slice into a graph, four values per
// match: home index, away index, home goals, away goals. Rows where both
// indexes collide are skipped, like the loader skips malformed rows.
func buildFromEncoded(encoded []int, policy graph.DrawPolicy) *graph.Graph {
	g := graph.New(policy)
	for i := 0; i+3 < len(encoded); i += 4 {
		home := fmt.Sprintf("Team %d", encoded[i]%8)
		away := fmt.Sprintf("Team %d", encoded[i+1]%8)
		if home == away {
			continue
		}
		g.AddResult(home, away, encoded[i+2]%6, encoded[i+3]%6)
	}
	return g
}

// TestPageRankInvariants verifies properties that must hold for any
// match set, however adversarial the fixture is.
func TestPageRankInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	encodedGen := gen.SliceOf(gen.IntRange(0, 1000))

	// Property 1: scores always sum to 1 (or the graph is empty)
	properties.Property("scores sum to one", prop.ForAll(
		func(encoded []int) bool {
			g := buildFromEncoded(encoded, graph.DrawsSplit)
			result, err := PageRank(g, DefaultOptions())
			if err != nil {
				return false
			}
			if g.NodeCount() == 0 {
				return len(result.Scores) == 0
			}
			sum := 0.0
			for _, s := range result.Scores {
				sum += s
			}
			return math.Abs(sum-1.0) < 1e-6
		},
		encodedGen,
	))

	// Property 2: scores are non-negative and one per node
	properties.Property("one non-negative score per team", prop.ForAll(
		func(encoded []int) bool {
			g := buildFromEncoded(encoded, graph.DrawsSplit)
			result, err := PageRank(g, DefaultOptions())
			if err != nil {
				return false
			}
			if len(result.Scores) != g.NodeCount() {
				return false
			}
			for _, s := range result.Scores {
				if s < 0 {
					return false
				}
			}
			return true
		},
		encodedGen,
	))

	// Property 3: two runs on identical input produce identical rankings
	properties.Property("ranking is deterministic", prop.ForAll(
		func(encoded []int) bool {
			g1 := buildFromEncoded(encoded, graph.DrawsSplit)
			g2 := buildFromEncoded(encoded, graph.DrawsSplit)

			r1, err1 := PageRank(g1, DefaultOptions())
			r2, err2 := PageRank(g2, DefaultOptions())
			if err1 != nil || err2 != nil {
				return false
			}

			ranked1 := r1.Ranked(g1)
			ranked2 := r2.Ranked(g2)
			if len(ranked1) != len(ranked2) {
				return false
			}
			for i := range ranked1 {
				if ranked1[i] != ranked2[i] {
					return false
				}
			}
			return true
		},
		encodedGen,
	))

	// Property 4: draw policy never changes which teams exist
	properties.Property("draw policy preserves node set", prop.ForAll(
		func(encoded []int) bool {
			split := buildFromEncoded(encoded, graph.DrawsSplit)
			ignore := buildFromEncoded(encoded, graph.DrawsIgnore)
			return split.NodeCount() == ignore.NodeCount()
		},
		encodedGen,
	))

	properties.TestingRun(t)
}
