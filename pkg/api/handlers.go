package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(s.startTime).String(),
	})
}

func (s *Server) handleAllTime(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	rows := s.store.AllTime(limit)
	s.respondJSON(w, http.StatusOK, AllTimeResponse{
		Count:    len(rows),
		Rankings: rows,
	})
}

func (s *Server) handleYearly(w http.ResponseWriter, r *http.Request) {
	yearStr := r.URL.Query().Get("year")
	if yearStr == "" {
		s.respondError(w, http.StatusBadRequest, "year parameter is required")
		return
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid year: %q", yearStr))
		return
	}
	limit, err := parseLimit(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, ok := s.store.Yearly(year, limit)
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("no rankings for year %d", year))
		return
	}
	s.respondJSON(w, http.StatusOK, YearlyResponse{
		Year:     year,
		Count:    len(rows),
		Rankings: rows,
	})
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	resp, ok := s.store.Team(name)
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("team %q not found", name))
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, StatsResponse{
		Teams:     s.store.TeamCount(),
		Years:     s.store.Years(),
		Uptime:    time.Since(s.startTime).String(),
		Summaries: s.store.Summaries(),
	})
}

// parseLimit reads the optional limit query parameter. Zero means
// no limit.
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0, fmt.Errorf("invalid limit: %q", raw)
	}
	return limit, nil
}
