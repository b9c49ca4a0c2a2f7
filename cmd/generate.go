package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MJE43/tile-variations-go/internal/config"
	"github.com/MJE43/tile-variations-go/internal/scene"
	"github.com/MJE43/tile-variations-go/internal/store"
	"github.com/MJE43/tile-variations-go/internal/tiles"
	"github.com/MJE43/tile-variations-go/internal/tileset"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate tile variations",
	Long: `Generate emits one tile per selected edge combination. In sampled mode
--count combinations are drawn without replacement; in exhaustive mode all 64
(after filters) are emitted in enumeration order.

Sinks:
  log       print "Created file: <path>" per tile
  manifest  write a JSON snapshot of the modifier inputs to each tile path
  bpy       write a Blender Python script that sets the inputs and saves each file
  none      only record the run (with --db) or write the tileset`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, generatorBindings)
	},
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addGeneratorFlags(generateCmd)
	generateCmd.Flags().String("tileset", "", "Also write a WFC tileset JSON to this path")
	generateCmd.Flags().String("sink", config.SinkLog, "Tile sink: log, manifest, bpy or none")
	generateCmd.Flags().String("object", "Plane", "Scene object carrying the modifiers")
	generateCmd.Flags().String("template", "", "Template scene the manifest or script applies to")
	generateCmd.Flags().String("script", "generate_tiles.py", "Output path of the bpy sink")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		sinks  tiles.MultiSink
		script *scene.Script
	)
	outDir := cfg.Generate.OutputDir

	switch cfg.Scene.Sink {
	case config.SinkLog:
		sinks = append(sinks, tiles.NewLogSink(cmd.OutOrStdout(), outDir))
	case config.SinkManifest:
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		sinks = append(sinks,
			tiles.NewSceneSink(scene.NewManifest(cfg.Scene.Template), g.sceneBinding(), g.ranges, outDir, logger),
			tiles.NewLogSink(cmd.OutOrStdout(), outDir),
		)
	case config.SinkBpy:
		script = scene.NewScript(cfg.Scene.Template)
		sinks = append(sinks, tiles.NewSceneSink(script, g.sceneBinding(), g.ranges, outDir, logger))
	}

	var collected tiles.Collector
	if cfg.Generate.Tileset != "" {
		sinks = append(sinks, &collected)
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	var run *store.Run
	if db != nil {
		defer db.Close()
		run, err = g.startRun(db)
		if err != nil {
			return err
		}
		sinks = append(sinks, tiles.NewRecordSink(db, run.ID, outDir))
		logger.Debug("run recorded", "run_id", run.ID, "db", cfg.Store.Path)
	}

	logger.Info("Generating tiles",
		"tile_type", cfg.Generate.TileType,
		"mode", cfg.Generate.Mode,
		"source", g.sources.Mode(),
		"sink", cfg.Scene.Sink,
	)

	summary, runErr := g.gen.Run(ctx, sinks)
	if runErr == nil {
		runErr = finishOutputs(cfg, script, collected.Descriptors)
	}

	if run != nil {
		run.TileCount = summary.Emitted
		run.Status = store.StatusCompleted
		if runErr != nil {
			run.Status = store.StatusFailed
			run.Error = runErr.Error()
		}
		if err := db.UpdateRun(run); err != nil {
			logger.Error("Failed to update run", "run_id", run.ID, "error", err)
		}
	}

	if runErr != nil {
		logger.Error("Generation failed", "emitted", summary.Emitted, "failed", summary.Failed, "error", runErr)
		return runErr
	}

	logger.Info("Tile generation complete",
		"candidates", summary.Candidates,
		"emitted", summary.Emitted,
		"duration", summary.Duration,
	)
	return nil
}

// finishOutputs writes the outputs that need the whole run.
func finishOutputs(cfg *config.Config, script *scene.Script, ds []tiles.Descriptor) error {
	if script != nil {
		if err := writeScript(cfg.Scene.Script, script); err != nil {
			return err
		}
		logger.Info("Wrote Blender script", "path", cfg.Scene.Script)
	}
	if cfg.Generate.Tileset != "" {
		if err := tileset.Write(cfg.Generate.Tileset, ds); err != nil {
			return fmt.Errorf("write tileset: %w", err)
		}
		logger.Info("Wrote tileset", "path", cfg.Generate.Tileset, "tiles", len(ds))
	}
	return nil
}

func writeScript(path string, script *scene.Script) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create script: %w", err)
	}
	if _, err := script.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write script: %w", err)
	}
	return f.Close()
}

// contextOrBackground keeps commands usable when executed without a context.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
