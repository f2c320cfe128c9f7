package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matchrank/matchrank/pkg/rank"
)

func TestSummariesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summaries.json")
	summaries := map[string]rank.Summary{
		"alltime": {Nodes: 4, Edges: 5, Matches: 6, Dangling: 1, Density: 0.42, MaxIn: "Ajax", MaxOut: "Milan"},
		"2010":    {Nodes: 2, Edges: 1, Matches: 1, MaxIn: "Ajax", MaxOut: "Milan"},
	}

	if err := WriteSummaries(path, summaries); err != nil {
		t.Fatalf("WriteSummaries failed: %v", err)
	}

	got, err := ReadSummaries(path)
	if err != nil {
		t.Fatalf("ReadSummaries failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d partitions, want 2", len(got))
	}
	if got["alltime"] != summaries["alltime"] {
		t.Errorf("alltime summary = %+v, want %+v", got["alltime"], summaries["alltime"])
	}
	if got["2010"].Nodes != 2 {
		t.Errorf("2010 nodes = %d, want 2", got["2010"].Nodes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"max_in_team": "Ajax"`) {
		t.Errorf("summaries file missing expected field:\n%s", data)
	}
}

func TestReadSummaries_Missing(t *testing.T) {
	if _, err := ReadSummaries(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing summaries file")
	}
}

func TestReadSummaries_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summaries.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSummaries(path); err == nil {
		t.Error("expected parse error for malformed summaries file")
	}
}
