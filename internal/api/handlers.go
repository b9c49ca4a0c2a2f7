package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MJE43/tile-variations-go/internal/engine"
	"github.com/MJE43/tile-variations-go/internal/params"
	"github.com/MJE43/tile-variations-go/internal/selector"
	"github.com/MJE43/tile-variations-go/internal/store"
	"github.com/MJE43/tile-variations-go/internal/tiles"
	"github.com/MJE43/tile-variations-go/internal/variant"
)

const maxPlanBody = 1 << 20

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, GetVersionInfo())
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets := make(map[string]params.Ranges, len(params.Presets))
	for _, name := range params.PresetNames() {
		rs, _ := params.Preset(name)
		presets[name] = rs
	}
	s.writeJSON(w, http.StatusOK, PresetsResponse{Presets: presets, EngineVersion: EngineVersion})
}

func (s *Server) handleVariant(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.Atoi(raw)
	if err != nil {
		s.errorHandler.HandleValidationError(w, r, "id", "id must be an integer")
		return
	}
	v, err := variant.Decode(variant.ID(n))
	if err != nil {
		s.errorHandler.HandleError(w, r, http.StatusNotFound, ErrTypeNotFound, "Unknown combination id", err)
		return
	}

	canon := v.Canonical()
	s.writeJSON(w, http.StatusOK, VariantResponse{
		ID:            variant.ID(n),
		Index:         v.Index(),
		Flags:         v,
		Canonical:     canon,
		CanonicalID:   variant.Encode(canon),
		EngineVersion: EngineVersion,
	})
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBody)).Decode(&req); err != nil {
		s.errorHandler.HandleValidationError(w, r, "body", "invalid JSON")
		return
	}

	if req.TileType == "" {
		req.TileType = "hex"
	}
	if req.Mode == "" {
		req.Mode = string(tiles.ModeSampled)
	}
	if req.Count == nil {
		req.Count = intPtr(tiles.DefaultCount)
	}
	if req.Precision == nil {
		req.Precision = intPtr(tiles.DefaultPrecision)
	}

	ranges := req.Params
	if len(ranges) == 0 {
		rs, err := params.Preset(req.TileType)
		if err != nil {
			s.errorHandler.HandleValidationError(w, r, "tile_type", err.Error())
			return
		}
		ranges = rs
	}

	var filter *selector.Filter
	if req.Filter != "" {
		f, err := selector.Compile(req.Filter)
		if err != nil {
			s.errorHandler.HandleError(w, r, http.StatusBadRequest, ErrTypeInvalidFilter, "Filter does not compile", err)
			return
		}
		filter = f
	}

	sources := engine.NewSources(req.Seed, req.TileType)
	g, err := tiles.NewGenerator(tiles.Options{
		Mode:              tiles.Mode(req.Mode),
		Count:             *req.Count,
		Ranges:            ranges,
		Precision:         *req.Precision,
		Extension:         req.Extension,
		Filter:            filter,
		DistinctRotations: req.DistinctRotations,
	}, sources)
	if err != nil {
		s.errorHandler.HandleError(w, r, http.StatusBadRequest, ErrTypeInvalidParams, "Invalid plan options", err)
		return
	}

	candidates, err := g.Candidates()
	if err != nil {
		s.errorHandler.HandleError(w, r, http.StatusBadRequest, ErrTypeInvalidFilter, "Filter evaluation failed", err)
		return
	}

	plan, err := g.Plan()
	switch {
	case errors.Is(err, engine.ErrInvalidArgument), errors.Is(err, tiles.ErrEmptySpace):
		s.errorHandler.HandleError(w, r, http.StatusBadRequest, ErrTypeInvalidCount, "Sample count does not fit the design space", err)
		return
	case err != nil:
		s.errorHandler.HandleError(w, r, http.StatusInternalServerError, ErrTypeInternal, "Planning failed", err)
		return
	}

	s.writeJSON(w, http.StatusOK, PlanResponse{
		Tiles:         plan,
		Candidates:    len(candidates),
		SourceMode:    string(sources.Mode()),
		EngineVersion: EngineVersion,
		Echo:          req,
	})
}

func (s *Server) requireDB(w http.ResponseWriter, r *http.Request) bool {
	if s.db != nil {
		return true
	}
	s.errorHandler.HandleError(w, r, http.StatusServiceUnavailable, ErrTypeServiceUnavailable, "Run history is disabled", nil)
	return false
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w, r) {
		return
	}

	q := r.URL.Query()
	query := store.RunsQuery{
		TileType: q.Get("tile_type"),
		Status:   q.Get("status"),
		Page:     queryInt(q.Get("page"), 1),
		PerPage:  queryInt(q.Get("perPage"), 50),
	}
	if query.PerPage > 500 {
		s.errorHandler.HandleValidationError(w, r, "perPage", "perPage must be at most 500")
		return
	}

	runs, err := s.db.ListRuns(query)
	if err != nil {
		s.errorHandler.HandleError(w, r, http.StatusInternalServerError, ErrTypeInternal, "Failed to list runs", err)
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w, r) {
		return
	}

	run, err := s.db.GetRun(chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		s.errorHandler.HandleError(w, r, http.StatusNotFound, ErrTypeNotFound, "Run not found", err)
		return
	}
	if err != nil {
		s.errorHandler.HandleError(w, r, http.StatusInternalServerError, ErrTypeInternal, "Failed to load run", err)
		return
	}
	s.writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleRunTiles(w http.ResponseWriter, r *http.Request) {
	if !s.requireDB(w, r) {
		return
	}

	id := chi.URLParam(r, "id")
	if _, err := s.db.GetRun(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.errorHandler.HandleError(w, r, http.StatusNotFound, ErrTypeNotFound, "Run not found", err)
			return
		}
		s.errorHandler.HandleError(w, r, http.StatusInternalServerError, ErrTypeInternal, "Failed to load run", err)
		return
	}

	q := r.URL.Query()
	page, err := s.db.GetRunTiles(id, queryInt(q.Get("page"), 1), queryInt(q.Get("perPage"), 100))
	if err != nil {
		s.errorHandler.HandleError(w, r, http.StatusInternalServerError, ErrTypeInternal, "Failed to load tiles", err)
		return
	}
	s.writeJSON(w, http.StatusOK, page)
}

// queryInt parses a positive integer, falling back to def.
func queryInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	return n
}

func intPtr(n int) *int { return &n }
