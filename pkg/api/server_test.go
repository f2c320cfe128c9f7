package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchrank/matchrank/pkg/dataset"
	"github.com/matchrank/matchrank/pkg/logging"
	"github.com/matchrank/matchrank/pkg/metrics"
	"github.com/matchrank/matchrank/pkg/rank"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	allTime := []dataset.AllTimeRow{
		{Team: "FC Barcelona", League: "Spain LIGA BBVA", Score: 0.4},
		{Team: "Real Madrid CF", League: "Spain LIGA BBVA", Score: 0.35},
		{Team: "Milan", League: "Italy Serie A", Score: 0.25},
	}
	yearly := []dataset.YearlyRow{
		{Team: "FC Barcelona", Year: 2010, Score: 0.6},
		{Team: "Milan", Year: 2010, Score: 0.4},
		{Team: "Real Madrid CF", Year: 2011, Score: 1.0},
	}
	summaries := map[string]rank.Summary{
		"alltime": {Nodes: 3, Edges: 2, Matches: 2, Density: 1.0 / 3.0, MaxIn: "FC Barcelona", MaxOut: "Milan"},
		"2010":    {Nodes: 2, Edges: 1, Matches: 1},
	}
	store := NewStore(allTime, yearly, summaries)
	return NewServer(store, ":0", logging.NewNopLogger(), metrics.NewRegistry())
}

func doRequest(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	return rr
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/health")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, Version, resp.Version)
}

func TestAllTimeEndpoint(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/rankings/alltime")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp AllTimeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, "FC Barcelona", resp.Rankings[0].Team)
	assert.Equal(t, "Spain LIGA BBVA", resp.Rankings[0].League)
}

func TestAllTimeLimit(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/rankings/alltime?limit=2")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp AllTimeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Rankings, 2)
}

func TestAllTimeInvalidLimit(t *testing.T) {
	s := testServer(t)
	for _, limit := range []string{"abc", "-1"} {
		rr := doRequest(t, s, "/rankings/alltime?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "limit=%s", limit)
	}
}

func TestYearlyEndpoint(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/rankings/yearly?year=2010")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp YearlyResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2010, resp.Year)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "FC Barcelona", resp.Rankings[0].Team)
}

func TestYearlyMissingYear(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/rankings/yearly")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestYearlyUnknownYear(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/rankings/yearly?year=1999")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestTeamEndpoint(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/teams/FC%20Barcelona")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp TeamResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "FC Barcelona", resp.Team)
	assert.Equal(t, "Spain LIGA BBVA", resp.League)
	require.NotNil(t, resp.AllTime)
	assert.InDelta(t, 0.4, resp.AllTime.Score, 1e-12)
	require.Len(t, resp.Yearly, 1)
	assert.Equal(t, 2010, resp.Yearly[0].Year)
}

func TestTeamLookupIsCaseInsensitive(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/teams/fc%20barcelona")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp TeamResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "FC Barcelona", resp.Team)
}

func TestTeamNotFound(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/teams/Nonexistent%20United")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "not found")
}

func TestStatsEndpoint(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/stats")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp StatsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Teams)
	assert.Equal(t, []int{2010, 2011}, resp.Years)
	require.Contains(t, resp.Summaries, "alltime")
	assert.Equal(t, 3, resp.Summaries["alltime"].Nodes)
	assert.Equal(t, "FC Barcelona", resp.Summaries["alltime"].MaxIn)
	assert.Equal(t, 1, resp.Summaries["2010"].Matches)
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer(t)
	// Generate at least one tracked request first.
	doRequest(t, s, "/health")

	rr := doRequest(t, s, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "matchrank_http_requests_total")
}

func TestCORSHeaders(t *testing.T) {
	s := testServer(t)
	rr := doRequest(t, s, "/health")
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/rankings/alltime", nil)
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestStoreFromFiles(t *testing.T) {
	dir := t.TempDir()
	allTimePath := dir + "/alltime.csv"
	yearlyPath := dir + "/yearly.csv"

	summaryPath := dir + "/summaries.json"

	allTime := []dataset.AllTimeRow{{Team: "Ajax", League: "Netherlands Eredivisie", Score: 1.0}}
	yearly := []dataset.YearlyRow{{Team: "Ajax", Year: 2012, Score: 1.0}}
	summaries := map[string]rank.Summary{"alltime": {Nodes: 1}}
	require.NoError(t, dataset.WriteAllTime(allTimePath, allTime))
	require.NoError(t, dataset.WriteYearly(yearlyPath, yearly))
	require.NoError(t, dataset.WriteSummaries(summaryPath, summaries))

	store, err := NewStoreFromFiles(allTimePath, yearlyPath, summaryPath)
	require.NoError(t, err)
	assert.Equal(t, 1, store.TeamCount())
	assert.Equal(t, []int{2012}, store.Years())
	assert.Equal(t, 1, store.Summaries()["alltime"].Nodes)

	// Summaries are optional; the store works without them.
	store, err = NewStoreFromFiles(allTimePath, yearlyPath, "")
	require.NoError(t, err)
	assert.Nil(t, store.Summaries())

	_, err = NewStoreFromFiles(dir+"/missing.csv", yearlyPath, summaryPath)
	assert.Error(t, err)
}
