package api

import (
	"time"

	"github.com/matchrank/matchrank/pkg/dataset"
	"github.com/matchrank/matchrank/pkg/rank"
)

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// AllTimeResponse is returned by GET /rankings/alltime
type AllTimeResponse struct {
	Count    int                  `json:"count"`
	Rankings []dataset.AllTimeRow `json:"rankings"`
}

// YearlyResponse is returned by GET /rankings/yearly
type YearlyResponse struct {
	Year     int                 `json:"year"`
	Count    int                 `json:"count"`
	Rankings []dataset.YearlyRow `json:"rankings"`
}

// TeamResponse is returned by GET /teams/{name}
type TeamResponse struct {
	Team    string              `json:"team"`
	League  string              `json:"league,omitempty"`
	AllTime *dataset.AllTimeRow `json:"alltime,omitempty"`
	Yearly  []dataset.YearlyRow `json:"yearly,omitempty"`
}

// StatsResponse is returned by GET /stats
type StatsResponse struct {
	Teams     int                     `json:"teams"`
	Years     []int                   `json:"years"`
	Uptime    string                  `json:"uptime"`
	Summaries map[string]rank.Summary `json:"summaries,omitempty"`
}

// ErrorResponse is the error body for all endpoints
type ErrorResponse struct {
	Error string `json:"error"`
}
