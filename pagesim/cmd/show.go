package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/tracing"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the runs recorded in a database.",
	Long: "`show --db recording.sqlite3` lists the recorded runs. With " +
		"--id, the steps of one run are printed.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		dbFile, _ := cmd.Flags().GetString("db")
		id, _ := cmd.Flags().GetString("id")

		if dbFile == "" {
			return fmt.Errorf("--db is required")
		}

		reader, err := datarecording.NewReader(dbFile)
		if err != nil {
			return err
		}
		defer reader.Close()

		runs := tracing.NewRunReader(reader)
		out := cmd.OutOrStdout()

		if id != "" {
			result, err := runs.LoadRun(cmd.Context(), id)
			if err != nil {
				return err
			}

			return printSteps(out, id, result)
		}

		ids, err := runs.ListRunIDs(cmd.Context())
		if err != nil {
			return err
		}

		for _, id := range ids {
			fmt.Fprintln(out, id)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().String("db", "", "SQLite file written with --record")
	showCmd.Flags().String("id", "", "ID of the run to print")
}
