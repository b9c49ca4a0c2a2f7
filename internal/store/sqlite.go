package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// SQLiteDB implements the DB interface using SQLite
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a new SQLite database connection
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection: SQLite writes are serial and ":memory:" is per-connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate runs database migrations. It is safe to call repeatedly.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			tile_type TEXT NOT NULL,
			mode TEXT NOT NULL,
			source_mode TEXT NOT NULL,
			seed TEXT NOT NULL DEFAULT '',
			sample_count INTEGER NOT NULL DEFAULT 0,
			filter TEXT NOT NULL DEFAULT '',
			distinct_rotations INTEGER NOT NULL DEFAULT 0,
			ranges_json TEXT NOT NULL DEFAULT '[]',
			sink TEXT NOT NULL,
			output_dir TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL,
			tile_count INTEGER NOT NULL DEFAULT 0,
			error TEXT NOT NULL DEFAULT '',
			engine_version TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS tiles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			idx INTEGER NOT NULL,
			combination_id INTEGER NOT NULL,
			flags TEXT NOT NULL,
			params_json TEXT NOT NULL,
			filename TEXT NOT NULL,
			path TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tiles_run_id ON tiles(run_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_tiles_combination ON tiles(combination_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_tile_type ON runs(tile_type, created_at DESC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

const runColumns = `id, tile_type, mode, source_mode, seed, sample_count, filter,
		distinct_rotations, ranges_json, sink, output_dir, status, tile_count,
		error, engine_version, created_at`

// SaveRun saves a run to the database, assigning an ID when empty.
func (s *SQLiteDB) SaveRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.RangesJSON == "" {
		run.RangesJSON = "[]"
	}

	query := `INSERT INTO runs (
		id, tile_type, mode, source_mode, seed, sample_count, filter,
		distinct_rotations, ranges_json, sink, output_dir, status, tile_count,
		error, engine_version
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		run.ID, run.TileType, run.Mode, run.SourceMode, run.Seed, run.SampleCount,
		run.Filter, boolToInt(run.DistinctRotations), run.RangesJSON, run.Sink,
		run.OutputDir, run.Status, run.TileCount, run.Error, run.EngineVersion,
	)

	return err
}

// UpdateRun updates status, tile count and error of an existing run.
func (s *SQLiteDB) UpdateRun(run *Run) error {
	res, err := s.db.Exec(`UPDATE runs SET status = ?, tile_count = ?, error = ? WHERE id = ?`,
		run.Status, run.TileCount, run.Error, run.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, run.ID)
	}
	return nil
}

// SaveTiles saves multiple tiles in one transaction.
func (s *SQLiteDB) SaveTiles(runID string, tiles []Tile) error {
	if len(tiles) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO tiles
		(run_id, idx, combination_id, flags, params_json, filename, path)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tiles {
		params := t.ParamsJSON
		if params == "" {
			params = "[]"
		}
		if _, err := stmt.Exec(runID, t.Index, t.CombinationID, t.Flags, params, t.Filename, t.Path); err != nil {
			return err
		}
	}

	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var rotations int
	err := row.Scan(
		&run.ID, &run.TileType, &run.Mode, &run.SourceMode, &run.Seed, &run.SampleCount,
		&run.Filter, &rotations, &run.RangesJSON, &run.Sink, &run.OutputDir, &run.Status,
		&run.TileCount, &run.Error, &run.EngineVersion, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	run.DistinctRotations = rotations == 1
	return &run, nil
}

// GetRun retrieves a run by ID
func (s *SQLiteDB) GetRun(id string) (*Run, error) {
	run, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns retrieves runs with pagination and filtering, newest first.
func (s *SQLiteDB) ListRuns(query RunsQuery) (*RunsList, error) {
	whereClause := ""
	args := []any{}

	if query.TileType != "" {
		whereClause = "WHERE tile_type = ?"
		args = append(args, query.TileType)
	}
	if query.Status != "" {
		if whereClause == "" {
			whereClause = "WHERE status = ?"
		} else {
			whereClause += " AND status = ?"
		}
		args = append(args, query.Status)
	}

	var totalCount int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs "+whereClause, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to get total count: %w", err)
	}

	if query.PerPage <= 0 {
		query.PerPage = 50
	}
	if query.Page <= 0 {
		query.Page = 1
	}

	totalPages := (totalCount + query.PerPage - 1) / query.PerPage
	offset := (query.Page - 1) * query.PerPage

	mainQuery := `SELECT ` + runColumns + ` FROM runs ` + whereClause + `
		ORDER BY created_at DESC, rowid DESC
		LIMIT ? OFFSET ?`
	args = append(args, query.PerPage, offset)

	rows, err := s.db.Query(mainQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return &RunsList{
		Runs:       runs,
		TotalCount: totalCount,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}

// GetRunTiles retrieves a run's tiles in emission order with pagination.
func (s *SQLiteDB) GetRunTiles(runID string, page, perPage int) (*TilesPage, error) {
	var totalCount int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tiles WHERE run_id = ?", runID).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("failed to get tiles count: %w", err)
	}

	if perPage <= 0 {
		perPage = 100
	}
	if page <= 0 {
		page = 1
	}

	totalPages := (totalCount + perPage - 1) / perPage
	offset := (page - 1) * perPage

	rows, err := s.db.Query(`SELECT id, run_id, idx, combination_id, flags, params_json, filename, path
		FROM tiles WHERE run_id = ?
		ORDER BY id
		LIMIT ? OFFSET ?`, runID, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query tiles: %w", err)
	}
	defer rows.Close()

	tiles := []Tile{}
	for rows.Next() {
		var t Tile
		if err := rows.Scan(&t.ID, &t.RunID, &t.Index, &t.CombinationID, &t.Flags, &t.ParamsJSON, &t.Filename, &t.Path); err != nil {
			return nil, fmt.Errorf("failed to scan tile: %w", err)
		}
		tiles = append(tiles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tiles: %w", err)
	}

	return &TilesPage{
		Tiles:      tiles,
		TotalCount: totalCount,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
