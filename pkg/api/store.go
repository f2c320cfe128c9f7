package api

import (
	"fmt"
	"sort"
	"strings"

	"github.com/matchrank/matchrank/pkg/dataset"
	"github.com/matchrank/matchrank/pkg/graph"
	"github.com/matchrank/matchrank/pkg/rank"
)

// Store holds ranking tables loaded once at startup. All reads after
// construction are lock-free.
type Store struct {
	allTime   []dataset.AllTimeRow
	yearly    map[int][]dataset.YearlyRow
	years     []int
	summaries map[string]rank.Summary

	// lowercase canonical team name -> all-time row index
	teamIndex map[string]int
	// lowercase canonical team name -> per-year rows
	teamYearly map[string][]dataset.YearlyRow
}

// NewStore builds a store from ranking tables already in memory.
// Rows within each partition keep their input order, which the
// writer emits ranked. A nil summaries map is allowed; the stats
// endpoint then omits graph summaries.
func NewStore(allTime []dataset.AllTimeRow, yearly []dataset.YearlyRow, summaries map[string]rank.Summary) *Store {
	s := &Store{
		allTime:    allTime,
		yearly:     make(map[int][]dataset.YearlyRow),
		summaries:  summaries,
		teamIndex:  make(map[string]int),
		teamYearly: make(map[string][]dataset.YearlyRow),
	}
	for i, row := range allTime {
		key := teamKey(row.Team)
		if _, ok := s.teamIndex[key]; !ok {
			s.teamIndex[key] = i
		}
	}
	for _, row := range yearly {
		s.yearly[row.Year] = append(s.yearly[row.Year], row)
		key := teamKey(row.Team)
		s.teamYearly[key] = append(s.teamYearly[key], row)
	}
	for year := range s.yearly {
		s.years = append(s.years, year)
	}
	sort.Ints(s.years)
	return s
}

// NewStoreFromFiles loads the ranking tables written by a batch run.
// An empty summaryPath skips the graph summaries.
func NewStoreFromFiles(allTimePath, yearlyPath, summaryPath string) (*Store, error) {
	allTime, err := dataset.ReadAllTime(allTimePath)
	if err != nil {
		return nil, fmt.Errorf("loading all-time rankings: %w", err)
	}
	yearly, err := dataset.ReadYearly(yearlyPath)
	if err != nil {
		return nil, fmt.Errorf("loading yearly rankings: %w", err)
	}
	var summaries map[string]rank.Summary
	if summaryPath != "" {
		summaries, err = dataset.ReadSummaries(summaryPath)
		if err != nil {
			return nil, fmt.Errorf("loading graph summaries: %w", err)
		}
	}
	return NewStore(allTime, yearly, summaries), nil
}

// AllTime returns the top limit all-time rows, or all rows when
// limit <= 0.
func (s *Store) AllTime(limit int) []dataset.AllTimeRow {
	if limit <= 0 || limit > len(s.allTime) {
		limit = len(s.allTime)
	}
	return s.allTime[:limit]
}

// Yearly returns the top limit rows for one year. The second return
// is false when the year has no rankings.
func (s *Store) Yearly(year, limit int) ([]dataset.YearlyRow, bool) {
	rows, ok := s.yearly[year]
	if !ok {
		return nil, false
	}
	if limit <= 0 || limit > len(rows) {
		limit = len(rows)
	}
	return rows[:limit], true
}

// Team looks up one team across partitions. Matching is
// case-insensitive and whitespace-normalized.
func (s *Store) Team(name string) (*TeamResponse, bool) {
	key := teamKey(name)
	idx, inAllTime := s.teamIndex[key]
	yearlyRows := s.teamYearly[key]
	if !inAllTime && len(yearlyRows) == 0 {
		return nil, false
	}
	resp := &TeamResponse{Yearly: yearlyRows}
	if inAllTime {
		row := s.allTime[idx]
		resp.Team = row.Team
		resp.League = row.League
		resp.AllTime = &row
	} else {
		resp.Team = yearlyRows[0].Team
	}
	return resp, true
}

// Years returns the ranked years in ascending order.
func (s *Store) Years() []int {
	return s.years
}

// TeamCount returns the number of teams in the all-time table.
func (s *Store) TeamCount() int {
	return len(s.allTime)
}

// Summaries returns the per-partition graph summaries, nil when the
// batch run's summary file was not loaded.
func (s *Store) Summaries() map[string]rank.Summary {
	return s.summaries
}

func teamKey(name string) string {
	return strings.ToLower(graph.CanonicalName(name))
}
