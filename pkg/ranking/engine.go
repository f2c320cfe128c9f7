// Package ranking runs the full pipeline: one graph and one PageRank
// pass per configured partition, producing the two output tables.
package ranking

import (
	"strconv"
	"time"

	"github.com/matchrank/matchrank/pkg/dataset"
	"github.com/matchrank/matchrank/pkg/graph"
	"github.com/matchrank/matchrank/pkg/logging"
	"github.com/matchrank/matchrank/pkg/metrics"
	"github.com/matchrank/matchrank/pkg/rank"
)

// PartitionAllTime is the partition label for the full-dataset run.
const PartitionAllTime = "alltime"

// Params configures the engine. Years are the yearly partitions to
// compute, in output order; they are never inferred from the data.
type Params struct {
	Rank       rank.Options
	DrawPolicy graph.DrawPolicy
	Years      []int
	TopN       int
}

// Result is the outcome of one full run.
type Result struct {
	AllTime []dataset.AllTimeRow
	Yearly  []dataset.YearlyRow

	// Summaries by partition label (PartitionAllTime or the year).
	Summaries map[string]rank.Summary

	// TopTeams of the all-time partition, TopN entries.
	TopTeams []rank.TeamScore

	// Approximate is true when any partition hit the iteration limit
	// before converging; its scores are best estimates.
	Approximate bool
}

// Engine computes partitioned rankings from a match set. Each run is a
// pure function of its input: no state survives between Run calls.
type Engine struct {
	params  Params
	logger  logging.Logger
	metrics *metrics.Registry
}

// NewEngine creates an engine. A nil logger discards output and a nil
// registry records into a private one.
func NewEngine(params Params, logger logging.Logger, registry *metrics.Registry) *Engine {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if registry == nil {
		registry = metrics.NewRegistry()
	}
	return &Engine{
		params:  params,
		logger:  logger.With(logging.Component("ranking")),
		metrics: registry,
	}
}

// Run computes the all-time ranking plus one ranking per configured
// year. An empty match set produces empty tables, not an error.
func (e *Engine) Run(matches []dataset.Match) (*Result, error) {
	result := &Result{
		Summaries: make(map[string]rank.Summary),
	}

	leagues := leagueByTeam(matches)

	// All-time partition over every match
	allTimeRanked, err := e.runPartition(PartitionAllTime, matches, result)
	if err != nil {
		return nil, err
	}
	for _, ts := range allTimeRanked {
		result.AllTime = append(result.AllTime, dataset.AllTimeRow{
			Team:   ts.Team,
			League: leagues[ts.Team],
			Score:  ts.Score,
		})
	}

	// Yearly partitions in configured order
	byYear := make(map[int][]dataset.Match)
	for _, m := range matches {
		byYear[m.Year] = append(byYear[m.Year], m)
	}

	for _, year := range e.params.Years {
		yearMatches := byYear[year]
		if len(yearMatches) == 0 {
			e.logger.Debug("no matches for year", logging.Year(year))
			continue
		}

		ranked, err := e.runPartition(strconv.Itoa(year), yearMatches, result)
		if err != nil {
			return nil, err
		}
		for _, ts := range ranked {
			result.Yearly = append(result.Yearly, dataset.YearlyRow{
				Team:  ts.Team,
				Year:  year,
				Score: ts.Score,
			})
		}
	}

	return result, nil
}

// runPartition builds the graph for one partition and ranks it.
func (e *Engine) runPartition(partition string, matches []dataset.Match, result *Result) ([]rank.TeamScore, error) {
	start := time.Now()
	timer := logging.StartTimer(e.logger, "graph built", logging.Partition(partition))

	g := graph.New(e.params.DrawPolicy)
	for _, m := range matches {
		if err := g.AddResult(m.HomeTeam, m.AwayTeam, m.HomeScore, m.AwayScore); err != nil {
			// The loader already rejected malformed rows; anything left
			// over is logged and dropped, never fatal.
			e.logger.Warn("dropping invalid match",
				logging.Partition(partition), logging.Error(err))
		}
	}
	timer.End()

	summary := rank.Summarize(g)
	result.Summaries[partition] = summary
	e.metrics.RecordGraph(partition, summary.Nodes, summary.Edges, summary.Dangling)

	pr, err := rank.PageRank(g, e.params.Rank)
	if err != nil {
		return nil, err
	}

	e.metrics.RecordPageRank(partition, pr.Iterations, pr.Converged, time.Since(start))

	if !pr.Converged {
		result.Approximate = true
		e.logger.Warn("pagerank did not converge, scores are approximate",
			logging.Partition(partition),
			logging.Int("iterations", pr.Iterations))
	}

	e.logger.Info("partition ranked",
		logging.Partition(partition),
		logging.Int("teams", summary.Nodes),
		logging.Int("iterations", pr.Iterations),
		logging.Bool("converged", pr.Converged),
		logging.Latency(time.Since(start)))

	if partition == PartitionAllTime && e.params.TopN > 0 {
		result.TopTeams = pr.TopTeams(g, e.params.TopN)
	}

	return pr.Ranked(g), nil
}

// leagueByTeam attributes each team to the first league observed for it
// in the dataset, scanning matches in order with home before away.
func leagueByTeam(matches []dataset.Match) map[string]string {
	leagues := make(map[string]string)
	for _, m := range matches {
		home := graph.CanonicalName(m.HomeTeam)
		away := graph.CanonicalName(m.AwayTeam)
		if _, ok := leagues[home]; !ok && home != "" && m.League != "" {
			leagues[home] = m.League
		}
		if _, ok := leagues[away]; !ok && away != "" && m.League != "" {
			leagues[away] = m.League
		}
	}
	return leagues
}
