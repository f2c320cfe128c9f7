package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/matchrank/matchrank/pkg/logging"
)

// Match CSV schema written by the extractor:
// season, league_name, country_name, home_team, away_team, home_score, away_score
var matchColumns = []string{
	"season", "league_name", "country_name",
	"home_team", "away_team", "home_score", "away_score",
}

// Skip reasons used in the load report.
const (
	SkipMissingTeam = "missing_team"
	SkipBadScore    = "bad_score"
	SkipBadSeason   = "bad_season"
	SkipBadRow      = "bad_row"
)

// LoadReport summarizes one load of the match dataset.
type LoadReport struct {
	RunID   string
	Loaded  int
	Skipped int
	Reasons map[string]int
}

func (r *LoadReport) skip(reason string) {
	r.Skipped++
	r.Reasons[reason]++
}

// LoadMatches reads the match CSV. Malformed rows are skipped and logged
// with a reason, never fatal; a missing file is the one hard failure.
func LoadMatches(path string, logger logging.Logger) ([]Match, *LoadReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open matches file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Tolerate ragged rows; validated per field below

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			// A file with no rows at all yields an empty dataset
			return nil, newLoadReport(), nil
		}
		return nil, nil, fmt.Errorf("read matches header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.TrimSpace(col)] = i
	}
	for _, col := range matchColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, nil, fmt.Errorf("matches file %s: missing column %q", path, col)
		}
	}

	report := newLoadReport()
	log := logger.With(logging.Component("loader"), logging.RunID(report.RunID))

	var matches []Match
	line := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			line++
			report.skip(SkipBadRow)
			log.Warn("skipping unreadable row", logging.Int("line", line), logging.Error(err))
			continue
		}
		line++

		home := getField(record, colIndex, "home_team")
		away := getField(record, colIndex, "away_team")
		if home == "" || away == "" {
			report.skip(SkipMissingTeam)
			log.Warn("skipping row with missing team", logging.Int("line", line))
			continue
		}

		homeScore, err1 := strconv.Atoi(getField(record, colIndex, "home_score"))
		awayScore, err2 := strconv.Atoi(getField(record, colIndex, "away_score"))
		if err1 != nil || err2 != nil {
			report.skip(SkipBadScore)
			log.Warn("skipping row with bad score",
				logging.Int("line", line), logging.Team(home))
			continue
		}

		year, err := ParseSeason(getField(record, colIndex, "season"))
		if err != nil {
			report.skip(SkipBadSeason)
			log.Warn("skipping row with bad season",
				logging.Int("line", line), logging.Error(err))
			continue
		}

		matches = append(matches, Match{
			Year:      year,
			League:    getField(record, colIndex, "league_name"),
			Country:   getField(record, colIndex, "country_name"),
			HomeTeam:  home,
			AwayTeam:  away,
			HomeScore: homeScore,
			AwayScore: awayScore,
		})
		report.Loaded++
	}

	log.Info("matches loaded",
		logging.Path(path),
		logging.Count(report.Loaded),
		logging.Int("skipped", report.Skipped))

	return matches, report, nil
}

func newLoadReport() *LoadReport {
	return &LoadReport{
		RunID:   uuid.NewString(),
		Reasons: make(map[string]int),
	}
}

func getField(record []string, colIndex map[string]int, field string) string {
	if idx, ok := colIndex[field]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}
