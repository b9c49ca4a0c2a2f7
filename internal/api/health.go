package api

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/tile-variations-go/internal/params"
	"github.com/MJE43/tile-variations-go/internal/store"
)

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheckResponse represents a health check response
type HealthCheckResponse struct {
	Status        HealthStatus           `json:"status"`
	Timestamp     string                 `json:"timestamp"`
	EngineVersion string                 `json:"engine_version"`
	GitCommit     string                 `json:"git_commit,omitempty"`
	BuildTime     string                 `json:"build_time,omitempty"`
	Uptime        string                 `json:"uptime"`
	Checks        map[string]HealthCheck `json:"checks"`
	GoVersion     string                 `json:"go_version"`
	RequestID     string                 `json:"request_id,omitempty"`
}

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status   HealthStatus `json:"status"`
	Message  string       `json:"message,omitempty"`
	Duration string       `json:"duration,omitempty"`
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]HealthCheck{
		"presets":  s.checkPresets(),
		"database": s.checkDatabase(),
	}

	overall := HealthStatusHealthy
	for _, c := range checks {
		switch {
		case c.Status == HealthStatusUnhealthy:
			overall = HealthStatusUnhealthy
		case c.Status == HealthStatusDegraded && overall == HealthStatusHealthy:
			overall = HealthStatusDegraded
		}
	}

	status := http.StatusOK
	if overall == HealthStatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	s.writeJSON(w, status, HealthCheckResponse{
		Status:        overall,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		EngineVersion: EngineVersion,
		GitCommit:     GitCommit,
		BuildTime:     BuildTime,
		Uptime:        time.Since(s.startTime).String(),
		Checks:        checks,
		GoVersion:     runtime.Version(),
		RequestID:     middleware.GetReqID(r.Context()),
	})
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"alive":          true,
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"engine_version": EngineVersion,
		"uptime":         time.Since(s.startTime).String(),
		"request_id":     middleware.GetReqID(r.Context()),
	})
}

func (s *Server) checkPresets() HealthCheck {
	if len(params.Presets) == 0 {
		return HealthCheck{Status: HealthStatusUnhealthy, Message: "no tile presets"}
	}
	return HealthCheck{Status: HealthStatusHealthy}
}

// checkDatabase reports degraded rather than unhealthy without a store:
// planning still works.
func (s *Server) checkDatabase() HealthCheck {
	start := time.Now()
	if s.db == nil {
		return HealthCheck{Status: HealthStatusDegraded, Message: "run history disabled"}
	}
	if _, err := s.db.ListRuns(store.RunsQuery{Page: 1, PerPage: 1}); err != nil {
		return HealthCheck{Status: HealthStatusUnhealthy, Message: err.Error(), Duration: time.Since(start).String()}
	}
	return HealthCheck{Status: HealthStatusHealthy, Duration: time.Since(start).String()}
}
