package cmd

import (
	"github.com/spf13/cobra"

	"github.com/MJE43/tile-variations-go/internal/scene"
	"github.com/MJE43/tile-variations-go/internal/tiles"
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print a Blender script that builds the planned tiles",
	Long: `Script renders the planned tiles as a bpy script on stdout. Run it with

  blender --background template.blend --python tiles.py`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, generatorBindings)
	},
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(scriptCmd)

	addGeneratorFlags(scriptCmd)
	scriptCmd.Flags().String("object", "Plane", "Scene object carrying the modifiers")
	scriptCmd.Flags().String("template", "", "Template scene the script opens first")
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	script := scene.NewScript(cfg.Scene.Template)
	sink := tiles.NewSceneSink(script, g.sceneBinding(), g.ranges, cfg.Generate.OutputDir, logger)
	summary, err := g.gen.Run(contextOrBackground(cmd), sink)
	if err != nil {
		return err
	}

	if _, err := script.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}
	logger.Debug("Script rendered", "tiles", summary.Emitted)
	return nil
}
