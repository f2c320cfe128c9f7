package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T, r *Registry) map[string]*dto.MetricFamily {
	t.Helper()

	families, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}
	return byName
}

func TestRecordLoad(t *testing.T) {
	r := NewRegistry()

	r.RecordLoad(120, map[string]int{"missing_team": 3, "bad_score": 1})

	families := gather(t, r)

	loaded := families["matchrank_matches_loaded_total"]
	if loaded == nil {
		t.Fatal("matches loaded counter not registered")
	}
	if got := loaded.Metric[0].GetCounter().GetValue(); got != 120 {
		t.Errorf("matches loaded = %f, want 120", got)
	}

	skipped := families["matchrank_rows_skipped_total"]
	if skipped == nil {
		t.Fatal("rows skipped counter not registered")
	}
	total := 0.0
	for _, m := range skipped.Metric {
		total += m.GetCounter().GetValue()
	}
	if total != 4 {
		t.Errorf("total skipped = %f, want 4", total)
	}
}

func TestRecordGraphAndPageRank(t *testing.T) {
	r := NewRegistry()

	r.RecordGraph("2008", 20, 300, 2)
	r.RecordPageRank("2008", 35, true, 12*time.Millisecond)
	r.RecordPageRank("alltime", 100, false, 90*time.Millisecond)

	families := gather(t, r)

	nodes := families["matchrank_graph_nodes"]
	if nodes == nil || nodes.Metric[0].GetGauge().GetValue() != 20 {
		t.Errorf("graph nodes gauge wrong: %v", nodes)
	}

	runs := families["matchrank_pagerank_runs_total"]
	if runs == nil {
		t.Fatal("pagerank runs counter not registered")
	}

	statuses := make(map[string]float64)
	for _, m := range runs.Metric {
		for _, label := range m.GetLabel() {
			if label.GetName() == "status" {
				statuses[label.GetValue()] += m.GetCounter().GetValue()
			}
		}
	}
	if statuses["converged"] != 1 || statuses["approximate"] != 1 {
		t.Errorf("run statuses = %v, want one converged and one approximate", statuses)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("GET", "/rankings/alltime", "200", 5*time.Millisecond)
	r.RecordHTTPRequest("GET", "/rankings/alltime", "200", 7*time.Millisecond)

	families := gather(t, r)

	requests := families["matchrank_http_requests_total"]
	if requests == nil {
		t.Fatal("http requests counter not registered")
	}
	if got := requests.Metric[0].GetCounter().GetValue(); got != 2 {
		t.Errorf("request count = %f, want 2", got)
	}
}

func TestDefaultRegistrySingleton(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry must return the same instance")
	}
}
