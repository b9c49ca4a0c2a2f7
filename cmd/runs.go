package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MJE43/tile-variations-go/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect the run history",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show a run and its tiles",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd, runsShowCmd)

	runsListCmd.Flags().String("tile-type", "", "Only runs of this tile type")
	runsListCmd.Flags().String("status", "", "Only runs with this status")
	runsListCmd.Flags().Int("page", 1, "Page number")
	runsListCmd.Flags().Int("per-page", 20, "Runs per page")

	runsShowCmd.Flags().Int("page", 1, "Tile page number")
	runsShowCmd.Flags().Int("per-page", 100, "Tiles per page")
	runsShowCmd.Flags().Bool("json", false, "Print as JSON")
}

func openHistory() (store.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, errors.New("run history is disabled: set --db or store.path")
	}
	return db, nil
}

func runRunsList(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	tileType, _ := cmd.Flags().GetString("tile-type")
	status, _ := cmd.Flags().GetString("status")
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")

	list, err := db.ListRuns(store.RunsQuery{TileType: tileType, Status: status, Page: page, PerPage: perPage})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tTYPE\tMODE\tSOURCE\tSTATUS\tTILES")
	for _, r := range list.Runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.TileType, r.Mode, r.SourceMode, r.Status, r.TileCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d, %d runs\n", list.Page, list.TotalPages, list.TotalCount)
	return nil
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	run, err := db.GetRun(args[0])
	if err != nil {
		return err
	}
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")
	tilesPage, err := db.GetRunTiles(run.ID, page, perPage)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Run   *store.Run       `json:"run"`
			Tiles *store.TilesPage `json:"tiles"`
		}{run, tilesPage})
	}

	fmt.Fprintf(out, "Run %s (%s)\n", run.ID, run.Status)
	fmt.Fprintf(out, "  tile type: %s\n  mode: %s (%s)\n", run.TileType, run.Mode, run.SourceMode)
	if run.Seed != "" {
		fmt.Fprintf(out, "  seed: %s\n", run.Seed)
	}
	if run.Filter != "" {
		fmt.Fprintf(out, "  filter: %s\n", run.Filter)
	}
	if run.Error != "" {
		fmt.Fprintf(out, "  error: %s\n", run.Error)
	}
	fmt.Fprintf(out, "  tiles: %d\n\n", run.TileCount)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tFLAGS\tID\tPATH")
	for _, t := range tilesPage.Tiles {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\n", t.Index, t.Flags, t.CombinationID, t.Path)
	}
	return tw.Flush()
}
