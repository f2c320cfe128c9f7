package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matchrank/matchrank/pkg/api"
	"github.com/matchrank/matchrank/pkg/config"
	"github.com/matchrank/matchrank/pkg/logging"
	"github.com/matchrank/matchrank/pkg/metrics"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Override the listen address")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.ListenAddr = *addr
	}

	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))

	store, err := api.NewStoreFromFiles(cfg.AllTimeFile, cfg.YearlyFile, cfg.SummaryFile)
	if err != nil {
		logger.Error("loading ranking tables", logging.Error(err))
		os.Exit(1)
	}
	logger.Info("rankings loaded",
		logging.Int("teams", store.TeamCount()),
		logging.Int("years", len(store.Years())))

	server := api.NewServer(store, cfg.ListenAddr, logger, metrics.DefaultRegistry())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("server error", logging.Error(err))
		os.Exit(1)
	}
}
