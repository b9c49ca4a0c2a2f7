package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MJE43/tile-variations-go/internal/api"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		v := api.GetVersionInfo()
		fmt.Fprintf(cmd.OutOrStdout(), "tilegen %s (commit %s, built %s)\n", v.EngineVersion, v.GitCommit, v.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
