package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned for unknown run IDs.
var ErrNotFound = errors.New("run not found")

// Run statuses
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// DB represents the database interface
type DB interface {
	Close() error
	Migrate() error
	SaveRun(run *Run) error
	UpdateRun(run *Run) error
	SaveTiles(runID string, tiles []Tile) error
	GetRun(id string) (*Run, error)
	ListRuns(query RunsQuery) (*RunsList, error)
	GetRunTiles(runID string, page, perPage int) (*TilesPage, error)
}

// RunsQuery represents query parameters for listing runs
type RunsQuery struct {
	TileType string `json:"tileType,omitempty"`
	Status   string `json:"status,omitempty"`
	Page     int    `json:"page"`
	PerPage  int    `json:"perPage"`
}

// RunsList represents paginated runs response
type RunsList struct {
	Runs       []Run `json:"runs"`
	TotalCount int   `json:"totalCount"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	TotalPages int   `json:"totalPages"`
}

// TilesPage represents paginated tiles response
type TilesPage struct {
	Tiles      []Tile `json:"tiles"`
	TotalCount int    `json:"totalCount"`
	Page       int    `json:"page"`
	PerPage    int    `json:"perPage"`
	TotalPages int    `json:"totalPages"`
}

// Run is one generate invocation.
type Run struct {
	ID                string    `json:"id" db:"id"`
	TileType          string    `json:"tile_type" db:"tile_type"`
	Mode              string    `json:"mode" db:"mode"`
	SourceMode        string    `json:"source_mode" db:"source_mode"`
	Seed              string    `json:"seed,omitempty" db:"seed"`
	SampleCount       int       `json:"sample_count" db:"sample_count"`
	Filter            string    `json:"filter,omitempty" db:"filter"`
	DistinctRotations bool      `json:"distinct_rotations" db:"distinct_rotations"`
	RangesJSON        string    `json:"ranges_json" db:"ranges_json"`
	Sink              string    `json:"sink" db:"sink"`
	OutputDir         string    `json:"output_dir" db:"output_dir"`
	Status            string    `json:"status" db:"status"`
	TileCount         int       `json:"tile_count" db:"tile_count"`
	Error             string    `json:"error,omitempty" db:"error"`
	EngineVersion     string    `json:"engine_version" db:"engine_version"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// Tile is one emitted descriptor.
type Tile struct {
	ID            int64  `json:"id" db:"id"`
	RunID         string `json:"run_id" db:"run_id"`
	Index         int    `json:"index" db:"idx"`
	CombinationID int    `json:"combination_id" db:"combination_id"`
	Flags         string `json:"flags" db:"flags"`
	ParamsJSON    string `json:"params_json" db:"params_json"`
	Filename      string `json:"filename" db:"filename"`
	Path          string `json:"path" db:"path"`
}
