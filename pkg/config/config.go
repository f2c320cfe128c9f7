// Package config loads and validates the run configuration.
//
// A run is fully described by one YAML file plus command-line overrides.
// Partition boundaries (the season list) are configuration, never
// inferred from the dataset.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matchrank/matchrank/pkg/graph"
	"github.com/matchrank/matchrank/pkg/rank"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Config describes one ranking run and the serving layer.
type Config struct {
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// Files
	MatchesFile string `yaml:"matches_file" validate:"required"`
	AllTimeFile string `yaml:"alltime_file" validate:"required"`
	YearlyFile  string `yaml:"yearly_file" validate:"required"`
	SummaryFile string `yaml:"summary_file" validate:"required"`

	// PageRank parameters
	DampingFactor float64 `yaml:"damping_factor" validate:"gte=0,lt=1"`
	Tolerance     float64 `yaml:"tolerance" validate:"gt=0"`
	MaxIterations int     `yaml:"max_iterations" validate:"gte=1"`

	// DrawPolicy is applied uniformly to every partition of a run.
	DrawPolicy string `yaml:"draw_policy" validate:"oneof=split ignore"`

	// Years lists the yearly partitions to compute, in output order.
	Years []int `yaml:"years" validate:"dive,gte=1800,lte=2200"`

	// TopN teams logged after the all-time run.
	TopN int `yaml:"top_n" validate:"gte=0"`

	// Serving
	ListenAddr string `yaml:"listen_addr" validate:"required"`
}

// Default returns the configuration for the reference dataset
// (European seasons 2008 through 2016).
func Default() *Config {
	return &Config{
		LogLevel:      "info",
		MatchesFile:   "data/matches.csv",
		AllTimeFile:   "data/rankings_alltime.csv",
		YearlyFile:    "data/rankings_yearly.csv",
		SummaryFile:   "data/summaries.json",
		DampingFactor: 0.85,
		Tolerance:     1e-6,
		MaxIterations: 100,
		DrawPolicy:    graph.DrawsSplit.String(),
		Years:         []int{2008, 2009, 2010, 2011, 2012, 2013, 2014, 2015, 2016},
		TopN:          10,
		ListenAddr:    ":8080",
	}
}

// Load builds a Config from defaults overlaid with a YAML file.
// An empty path means defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// RankOptions returns the PageRank options described by the config.
func (c *Config) RankOptions() rank.Options {
	return rank.Options{
		DampingFactor: c.DampingFactor,
		MaxIterations: c.MaxIterations,
		Tolerance:     c.Tolerance,
	}
}

// Policy returns the configured draw policy.
func (c *Config) Policy() graph.DrawPolicy {
	policy, _ := graph.ParseDrawPolicy(c.DrawPolicy)
	return policy
}
