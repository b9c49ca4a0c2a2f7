// Package api serves tile planning and run history over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MJE43/tile-variations-go/internal/store"
)

const requestTimeout = 30 * time.Second

// Server handles HTTP requests
type Server struct {
	db           store.DB
	errorHandler *ErrorHandler
	logger       *slog.Logger
	startTime    time.Time
}

// NewServer creates a new API server. db may be nil, in which case the run
// history endpoints answer 503.
func NewServer(db store.DB, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "api")

	s := &Server{
		db:           db,
		errorHandler: NewErrorHandler(logger),
		logger:       logger,
		startTime:    time.Now(),
	}
	logger.Info("api server created", "history_enabled", db != nil, "version", EngineVersion)
	return s
}

// Routes sets up the HTTP routes with middleware
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.errorHandler.RecoveryHandler)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", s.handleHealthCheck)
	r.Get("/health/live", s.handleLiveness)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Get("/presets", s.handleListPresets)
		r.Get("/variants/{id}", s.handleVariant)
		r.Post("/plan", s.handlePlan)

		r.Route("/runs", func(r chi.Router) {
			r.Get("/", s.handleListRuns)
			r.Get("/{id}", s.handleGetRun)
			r.Get("/{id}/tiles", s.handleRunTiles)
		})
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// writeJSON writes a JSON response with proper headers
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
