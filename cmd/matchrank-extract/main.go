package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/matchrank/matchrank/pkg/dataset"
	"github.com/matchrank/matchrank/pkg/logging"
)

// matchQuery flattens the European Soccer Database schema into one
// row per match. Team joins are LEFT JOINs because some matches
// reference teams missing from the team table; those rows are
// dropped below.
const matchQuery = `
SELECT m.season,
       l.name        AS league_name,
       c.name        AS country_name,
       ht.team_long_name AS home_team,
       at.team_long_name AS away_team,
       m.home_team_goal,
       m.away_team_goal
FROM match m
JOIN league l  ON m.league_id  = l.id
JOIN country c ON m.country_id = c.id
LEFT JOIN team ht ON m.home_team_api_id = ht.team_api_id
LEFT JOIN team at ON m.away_team_api_id = at.team_api_id
ORDER BY m.id`

func main() {
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
	outFile := flag.String("out", "data/matches.csv", "Output matches CSV")
	timeout := flag.Duration("timeout", 5*time.Minute, "Extraction timeout")
	flag.Parse()

	if *dsn == "" {
		fmt.Fprintln(os.Stderr, "Usage: matchrank-extract --dsn postgres://... [--out data/matches.csv]")
		fmt.Fprintln(os.Stderr, "The DSN can also be set via DATABASE_URL.")
		os.Exit(1)
	}

	logger := logging.DefaultLogger().With(logging.Component("extract"))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	conn, err := pgx.Connect(ctx, *dsn)
	if err != nil {
		logger.Error("connecting to database", logging.Error(err))
		os.Exit(1)
	}
	defer conn.Close(ctx)

	matches, dropped, err := extractMatches(ctx, conn)
	if err != nil {
		logger.Error("extracting matches", logging.Error(err))
		os.Exit(1)
	}
	logger.Info("matches extracted",
		logging.Int("matches", len(matches)),
		logging.Int("dropped", dropped))

	if err := dataset.WriteMatches(*outFile, matches); err != nil {
		logger.Error("writing matches", logging.Path(*outFile), logging.Error(err))
		os.Exit(1)
	}
	logger.Info("wrote matches file", logging.Path(*outFile))
}

func extractMatches(ctx context.Context, conn *pgx.Conn) ([]dataset.Match, int, error) {
	rows, err := conn.Query(ctx, matchQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("querying matches: %w", err)
	}
	defer rows.Close()

	var matches []dataset.Match
	dropped := 0
	for rows.Next() {
		var (
			season, league, country string
			home, away              *string
			homeGoals, awayGoals    int
		)
		if err := rows.Scan(&season, &league, &country, &home, &away, &homeGoals, &awayGoals); err != nil {
			return nil, 0, fmt.Errorf("scanning match row: %w", err)
		}
		if home == nil || away == nil {
			dropped++
			continue
		}
		year, err := dataset.ParseSeason(season)
		if err != nil {
			dropped++
			continue
		}
		matches = append(matches, dataset.Match{
			Year:      year,
			League:    league,
			Country:   country,
			HomeTeam:  *home,
			AwayTeam:  *away,
			HomeScore: homeGoals,
			AwayScore: awayGoals,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading match rows: %w", err)
	}
	return matches, dropped, nil
}
