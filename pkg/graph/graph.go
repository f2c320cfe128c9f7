// Package graph builds the directed influence graph from match results.
//
// Each team is a node. A decided match contributes weight from the loser
// to the winner; repeated results between the same ordered pair accumulate
// into a single weighted edge. Node IDs are assigned in first-seen order,
// so identical input always produces an identical graph.
package graph

import (
	"strings"
)

// DrawPolicy controls how drawn matches contribute to the graph.
type DrawPolicy int

const (
	// DrawsSplit adds a low-weight edge in both directions for a draw.
	DrawsSplit DrawPolicy = iota
	// DrawsIgnore skips drawn matches entirely.
	DrawsIgnore
)

// drawWeight is the per-direction edge weight of a drawn match under DrawsSplit.
const drawWeight = 0.5

// String returns the configuration name of the policy.
func (p DrawPolicy) String() string {
	switch p {
	case DrawsSplit:
		return "split"
	case DrawsIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// ParseDrawPolicy converts a configuration string to a DrawPolicy.
func ParseDrawPolicy(s string) (DrawPolicy, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "split":
		return DrawsSplit, true
	case "ignore":
		return DrawsIgnore, true
	default:
		return DrawsSplit, false
	}
}

// Neighbor is an adjacent node with the accumulated edge weight.
type Neighbor struct {
	ID     uint64
	Weight float64
}

// Statistics summarizes graph size.
type Statistics struct {
	NodeCount  uint64
	EdgeCount  uint64 // distinct directed (from, to) pairs
	MatchCount uint64 // results that contributed at least one edge or node
}

// Graph is the in-memory directed weighted graph over team nodes.
//
// All adjacency is kept both ways so the rank engine can walk incoming
// edges directly. Neighbor order is first-seen order, which keeps every
// iteration over the graph deterministic for a given input sequence.
type Graph struct {
	policy DrawPolicy

	idsByName map[string]uint64
	names     []string // id-1 -> canonical name

	out       []map[uint64]float64 // id-1 -> target id -> weight
	outOrder  [][]uint64           // id-1 -> target ids, first-seen order
	in        []map[uint64]float64
	inOrder   [][]uint64
	outWeight []float64

	edgeCount  uint64
	matchCount uint64
}

// New creates an empty graph with the given draw policy.
func New(policy DrawPolicy) *Graph {
	return &Graph{
		policy:    policy,
		idsByName: make(map[string]uint64),
	}
}

// CanonicalName normalizes a team name to its node key.
// The same club must map to one node no matter how the row was padded.
func CanonicalName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// AddResult records one match result. Wins add weight 1.0 from the loser
// to the winner. Draws follow the configured policy. Both teams become
// nodes even when the match adds no edge, so a team that only ever drew
// under DrawsIgnore still appears as a dangling node.
func (g *Graph) AddResult(home, away string, homeGoals, awayGoals int) error {
	homeName := CanonicalName(home)
	awayName := CanonicalName(away)

	if homeName == "" || awayName == "" {
		return buildError("AddResult", home, away, ErrMissingTeam)
	}
	if homeName == awayName {
		return buildError("AddResult", home, away, ErrSameTeam)
	}

	homeID := g.ensureNode(homeName)
	awayID := g.ensureNode(awayName)

	switch {
	case homeGoals > awayGoals:
		g.addWeight(awayID, homeID, 1.0)
	case awayGoals > homeGoals:
		g.addWeight(homeID, awayID, 1.0)
	default:
		if g.policy == DrawsSplit {
			g.addWeight(homeID, awayID, drawWeight)
			g.addWeight(awayID, homeID, drawWeight)
		}
	}

	g.matchCount++
	return nil
}

func (g *Graph) ensureNode(name string) uint64 {
	if id, ok := g.idsByName[name]; ok {
		return id
	}
	g.names = append(g.names, name)
	g.out = append(g.out, nil)
	g.outOrder = append(g.outOrder, nil)
	g.in = append(g.in, nil)
	g.inOrder = append(g.inOrder, nil)
	g.outWeight = append(g.outWeight, 0)

	id := uint64(len(g.names))
	g.idsByName[name] = id
	return id
}

func (g *Graph) addWeight(from, to uint64, w float64) {
	fi, ti := from-1, to-1

	if g.out[fi] == nil {
		g.out[fi] = make(map[uint64]float64)
	}
	if _, seen := g.out[fi][to]; !seen {
		g.outOrder[fi] = append(g.outOrder[fi], to)
		g.edgeCount++
	}
	g.out[fi][to] += w
	g.outWeight[fi] += w

	if g.in[ti] == nil {
		g.in[ti] = make(map[uint64]float64)
	}
	if _, seen := g.in[ti][from]; !seen {
		g.inOrder[ti] = append(g.inOrder[ti], from)
	}
	g.in[ti][from] += w
}

// GetStatistics returns current graph statistics.
func (g *Graph) GetStatistics() Statistics {
	return Statistics{
		NodeCount:  uint64(len(g.names)),
		EdgeCount:  g.edgeCount,
		MatchCount: g.matchCount,
	}
}

// NodeCount returns the number of team nodes.
func (g *Graph) NodeCount() int {
	return len(g.names)
}

// NodeID looks up the node ID for a team name.
func (g *Graph) NodeID(name string) (uint64, bool) {
	id, ok := g.idsByName[CanonicalName(name)]
	return id, ok
}

// NodeName returns the canonical team name for a node ID.
func (g *Graph) NodeName(id uint64) (string, error) {
	if id == 0 || id > uint64(len(g.names)) {
		return "", ErrNodeNotFound
	}
	return g.names[id-1], nil
}

// Nodes returns all node IDs in ascending order.
func (g *Graph) Nodes() []uint64 {
	ids := make([]uint64, len(g.names))
	for i := range ids {
		ids[i] = uint64(i + 1)
	}
	return ids
}

// OutWeight returns the total outgoing edge weight of a node.
// A zero return for an existing node marks it as dangling.
func (g *Graph) OutWeight(id uint64) float64 {
	if id == 0 || id > uint64(len(g.outWeight)) {
		return 0
	}
	return g.outWeight[id-1]
}

// InNeighbors returns the nodes with an edge into id, in first-seen order,
// with their accumulated weights.
func (g *Graph) InNeighbors(id uint64) []Neighbor {
	if id == 0 || id > uint64(len(g.inOrder)) {
		return nil
	}
	ti := id - 1
	neighbors := make([]Neighbor, 0, len(g.inOrder[ti]))
	for _, from := range g.inOrder[ti] {
		neighbors = append(neighbors, Neighbor{ID: from, Weight: g.in[ti][from]})
	}
	return neighbors
}

// OutNeighbors returns the nodes id has an edge to, in first-seen order,
// with their accumulated weights.
func (g *Graph) OutNeighbors(id uint64) []Neighbor {
	if id == 0 || id > uint64(len(g.outOrder)) {
		return nil
	}
	fi := id - 1
	neighbors := make([]Neighbor, 0, len(g.outOrder[fi]))
	for _, to := range g.outOrder[fi] {
		neighbors = append(neighbors, Neighbor{ID: to, Weight: g.out[fi][to]})
	}
	return neighbors
}

// DanglingCount returns the number of nodes with zero outgoing weight.
func (g *Graph) DanglingCount() int {
	count := 0
	for _, w := range g.outWeight {
		if w == 0 {
			count++
		}
	}
	return count
}
