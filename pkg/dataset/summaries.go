package dataset

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matchrank/matchrank/pkg/rank"
)

// WriteSummaries persists per-partition graph summaries as JSON next to
// the ranking tables, keyed by partition name ("alltime" or the year).
func WriteSummaries(path string, summaries map[string]rank.Summary) error {
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summaries: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write summaries: %w", err)
	}
	return nil
}

// ReadSummaries loads the summaries written by a batch run.
func ReadSummaries(path string) (map[string]rank.Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summaries: %w", err)
	}
	var summaries map[string]rank.Summary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, fmt.Errorf("parse summaries: %w", err)
	}
	return summaries, nil
}
