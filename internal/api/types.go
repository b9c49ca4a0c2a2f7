package api

import (
	"github.com/MJE43/tile-variations-go/internal/params"
	"github.com/MJE43/tile-variations-go/internal/tiles"
	"github.com/MJE43/tile-variations-go/internal/variant"
)

// EngineError represents a structured error response with context
type EngineError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
	Timestamp string         `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e EngineError) Error() string {
	return e.Message
}

// Error types
const (
	ErrTypeInvalidParams = "invalid_params"
	ErrTypeInvalidCount  = "invalid_count"
	ErrTypeInvalidFilter = "invalid_filter"
	ErrTypeValidation    = "validation_error"

	ErrTypeNotFound = "not_found"

	ErrTypeTimeout            = "timeout"
	ErrTypeInternal           = "internal_error"
	ErrTypeServiceUnavailable = "service_unavailable"
)

// ErrorCategory represents error categories for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryLookup     ErrorCategory = "lookup"
	CategorySystem     ErrorCategory = "system"
	CategoryTimeout    ErrorCategory = "timeout"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeInvalidParams, ErrTypeInvalidCount, ErrTypeInvalidFilter, ErrTypeValidation:
		return CategoryValidation
	case ErrTypeNotFound:
		return CategoryLookup
	case ErrTypeTimeout:
		return CategoryTimeout
	default:
		return CategorySystem
	}
}

// VersionInfo contains engine version information
type VersionInfo struct {
	EngineVersion string `json:"engine_version"`
	GitCommit     string `json:"git_commit,omitempty"`
	BuildTime     string `json:"build_time,omitempty"`
}

// PlanRequest describes a dry run. Params overrides the tile type's preset.
// Count and Precision are pointers so that an explicit 0 differs from an
// absent field: absent takes the CLI defaults, 0 is used as sent.
type PlanRequest struct {
	TileType          string        `json:"tile_type"`
	Params            params.Ranges `json:"params,omitempty"`
	Mode              string        `json:"mode"`
	Count             *int          `json:"count,omitempty"`
	Seed              string        `json:"seed,omitempty"`
	Filter            string        `json:"filter,omitempty"`
	DistinctRotations bool          `json:"distinct_rotations,omitempty"`
	Precision         *int          `json:"precision,omitempty"`
	Extension         string        `json:"extension,omitempty"`
}

// PlanResponse lists the descriptors a generate run would emit.
type PlanResponse struct {
	Tiles         []tiles.Descriptor `json:"tiles"`
	Candidates    int                `json:"candidates"`
	SourceMode    string             `json:"source_mode"`
	EngineVersion string             `json:"engine_version"`
	Echo          PlanRequest        `json:"echo"`
}

// PresetsResponse lists the built-in tile types.
type PresetsResponse struct {
	Presets       map[string]params.Ranges `json:"presets"`
	EngineVersion string                   `json:"engine_version"`
}

// VariantResponse describes a single combination id.
type VariantResponse struct {
	ID            variant.ID     `json:"id"`
	Index         int            `json:"index"`
	Flags         variant.Vector `json:"flags"`
	Canonical     variant.Vector `json:"canonical"`
	CanonicalID   variant.ID     `json:"canonical_id"`
	EngineVersion string         `json:"engine_version"`
}
