package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/matchrank/matchrank/pkg/config"
	"github.com/matchrank/matchrank/pkg/dataset"
	"github.com/matchrank/matchrank/pkg/logging"
	"github.com/matchrank/matchrank/pkg/metrics"
	"github.com/matchrank/matchrank/pkg/ranking"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	matchesFile := flag.String("matches", "", "Override the input matches CSV")
	allTimeFile := flag.String("alltime", "", "Override the all-time output CSV")
	yearlyFile := flag.String("yearly", "", "Override the yearly output CSV")
	drawPolicy := flag.String("draws", "", "Draw handling: split or ignore")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *matchesFile != "" {
		cfg.MatchesFile = *matchesFile
	}
	if *allTimeFile != "" {
		cfg.AllTimeFile = *allTimeFile
	}
	if *yearlyFile != "" {
		cfg.YearlyFile = *yearlyFile
	}
	if *drawPolicy != "" {
		cfg.DrawPolicy = *drawPolicy
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	level := logging.ParseLevel(cfg.LogLevel)
	logger := logging.NewJSONLogger(os.Stdout, level)
	reg := metrics.DefaultRegistry()

	start := time.Now()
	matches, report, err := dataset.LoadMatches(cfg.MatchesFile, logger)
	if err != nil {
		logger.Error("loading matches", logging.Path(cfg.MatchesFile), logging.Error(err))
		os.Exit(1)
	}
	reg.RecordLoad(report.Loaded, report.Reasons)
	logger.Info("matches loaded",
		logging.RunID(report.RunID),
		logging.Path(cfg.MatchesFile),
		logging.Int("loaded", report.Loaded),
		logging.Int("skipped", report.Skipped))

	engine := ranking.NewEngine(ranking.Params{
		Rank:       cfg.RankOptions(),
		DrawPolicy: cfg.Policy(),
		Years:      cfg.Years,
		TopN:       cfg.TopN,
	}, logger, reg)

	result, err := engine.Run(matches)
	if err != nil {
		logger.Error("ranking run failed", logging.Error(err))
		os.Exit(1)
	}

	if err := dataset.WriteAllTime(cfg.AllTimeFile, result.AllTime); err != nil {
		logger.Error("writing all-time rankings", logging.Path(cfg.AllTimeFile), logging.Error(err))
		os.Exit(1)
	}
	if err := dataset.WriteYearly(cfg.YearlyFile, result.Yearly); err != nil {
		logger.Error("writing yearly rankings", logging.Path(cfg.YearlyFile), logging.Error(err))
		os.Exit(1)
	}
	if err := dataset.WriteSummaries(cfg.SummaryFile, result.Summaries); err != nil {
		logger.Error("writing graph summaries", logging.Path(cfg.SummaryFile), logging.Error(err))
		os.Exit(1)
	}

	for i, ts := range result.TopTeams {
		logger.Info("top team",
			logging.Int("rank", i+1),
			logging.Team(ts.Team),
			logging.Float64("score", ts.Score))
	}
	logger.Info("run complete",
		logging.RunID(report.RunID),
		logging.Int("alltime_rows", len(result.AllTime)),
		logging.Int("yearly_rows", len(result.Yearly)),
		logging.Bool("approximate", result.Approximate),
		logging.Duration("elapsed", time.Since(start)))
}
