package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MJE43/tile-variations-go/internal/tiles"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the tiles a generate run would produce",
	Long: `Plan selects and describes tiles exactly like generate but emits nothing.
With a seed the plan matches a later generate run with the same settings.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, generatorBindings)
	},
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	addGeneratorFlags(planCmd)
	planCmd.Flags().String("format", "table", "Output format: table, json or yaml")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	g, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	plan, err := g.gen.Plan()
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table":
		return printPlan(cmd, plan)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(plan); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func printPlan(cmd *cobra.Command, plan []tiles.Descriptor) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tFLAGS\tID\tFILENAME")
	for _, d := range plan {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", d.Index, d.Vector, d.ID, d.Filename)
	}
	return tw.Flush()
}
