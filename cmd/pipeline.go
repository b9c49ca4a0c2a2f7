package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MJE43/tile-variations-go/internal/api"
	"github.com/MJE43/tile-variations-go/internal/config"
	"github.com/MJE43/tile-variations-go/internal/engine"
	"github.com/MJE43/tile-variations-go/internal/params"
	"github.com/MJE43/tile-variations-go/internal/selector"
	"github.com/MJE43/tile-variations-go/internal/store"
	"github.com/MJE43/tile-variations-go/internal/tiles"
)

// generatorBindings are shared by generate, plan and script.
var generatorBindings = []flagBinding{
	{"generate.mode", "mode"},
	{"generate.count", "count"},
	{"generate.seed", "seed"},
	{"generate.tile_type", "tile-type"},
	{"generate.precision", "precision"},
	{"generate.extension", "extension"},
	{"generate.output_dir", "output-dir"},
	{"generate.filter", "filter"},
	{"generate.distinct_rotations", "distinct-rotations"},
	{"generate.tileset", "tileset"},
	{"scene.sink", "sink"},
	{"scene.object", "object"},
	{"scene.template", "template"},
	{"scene.script", "script"},
}

func addGeneratorFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("mode", string(tiles.ModeSampled), "Generation mode: exhaustive or sampled")
	f.Int("count", tiles.DefaultCount, "Number of tiles in sampled mode")
	f.String("seed", "", "Seed for reproducible parameters (empty uses system entropy)")
	f.String("tile-type", "hex", fmt.Sprintf("Tile type preset %v", params.PresetNames()))
	f.Int("precision", tiles.DefaultPrecision, "Decimals per parameter in filenames")
	f.String("extension", tiles.DefaultExtension, "Asset file extension")
	f.String("output-dir", "tiles", "Directory tile files are written to")
	f.String("filter", "", "JavaScript predicate over flags, id and index")
	f.Bool("distinct-rotations", false, "Keep one tile per rotation class")
}

// generator bundles what a command needs to run or plan.
type generator struct {
	cfg     *config.Config
	ranges  params.Ranges
	sources engine.Sources
	gen     *tiles.Generator
}

func newGenerator(cfg *config.Config) (*generator, error) {
	ranges, err := cfg.Ranges()
	if err != nil {
		return nil, err
	}

	var filter *selector.Filter
	if cfg.Generate.Filter != "" {
		filter, err = selector.Compile(cfg.Generate.Filter)
		if err != nil {
			return nil, err
		}
	}

	sources := engine.NewSources(cfg.Generate.Seed, cfg.Generate.TileType)
	gen, err := tiles.NewGenerator(tiles.Options{
		Mode:              cfg.Mode(),
		Count:             cfg.Generate.Count,
		Ranges:            ranges,
		Precision:         cfg.Generate.Precision,
		Extension:         cfg.Generate.Extension,
		Filter:            filter,
		DistinctRotations: cfg.Generate.DistinctRotations,
	}, sources)
	if err != nil {
		return nil, err
	}

	return &generator{cfg: cfg, ranges: ranges, sources: sources, gen: gen}, nil
}

func (g *generator) sceneBinding() tiles.SceneBinding {
	return tiles.SceneBinding{Object: g.cfg.Scene.Object, ID: g.cfg.Scene.ID}
}

// openStore returns nil when history is disabled.
func openStore(cfg *config.Config) (store.DB, error) {
	if cfg.Store.Path == "" {
		return nil, nil
	}
	db, err := store.NewSQLiteDB(cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// startRun records a new run in db.
func (g *generator) startRun(db store.DB) (*store.Run, error) {
	rangesJSON, err := json.Marshal(g.ranges)
	if err != nil {
		return nil, err
	}
	run := &store.Run{
		TileType:          g.cfg.Generate.TileType,
		Mode:              g.cfg.Generate.Mode,
		SourceMode:        string(g.sources.Mode()),
		Seed:              g.cfg.Generate.Seed,
		SampleCount:       g.cfg.Generate.Count,
		Filter:            g.cfg.Generate.Filter,
		DistinctRotations: g.cfg.Generate.DistinctRotations,
		RangesJSON:        string(rangesJSON),
		Sink:              g.cfg.Scene.Sink,
		OutputDir:         g.cfg.Generate.OutputDir,
		Status:            store.StatusRunning,
		EngineVersion:     api.EngineVersion,
	}
	if err := db.SaveRun(run); err != nil {
		return nil, err
	}
	return run, nil
}
