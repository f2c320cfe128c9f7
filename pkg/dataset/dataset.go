// Package dataset handles the flat tabular files the pipeline reads and
// writes: the match input CSV and the two fixed-schema ranking outputs.
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// YearAllTime is the sentinel year for the all-time partition.
const YearAllTime = 0

// Match is one immutable match record from the input dataset.
type Match struct {
	Year      int // starting year of the season
	League    string
	Country   string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
}

// AllTimeRow is one row of the all-time ranking output (team,league,score).
type AllTimeRow struct {
	Team   string  `json:"team"`
	League string  `json:"league"`
	Score  float64 `json:"score"`
}

// YearlyRow is one row of the yearly ranking output (team,year,score).
type YearlyRow struct {
	Team  string  `json:"team"`
	Year  int     `json:"year"`
	Score float64 `json:"score"`
}

// ErrBadSeason reports an unparseable season value.
var ErrBadSeason = errors.New("unparseable season")

// ParseSeason converts a season value to its starting year. Both plain
// years ("2008") and spans ("2008/2009") appear in the source data.
func ParseSeason(s string) (int, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}
	year, err := strconv.Atoi(s)
	if err != nil || year <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadSeason, s)
	}
	return year, nil
}
