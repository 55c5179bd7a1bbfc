package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/refstring"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a random reference string.",
	Long: "`generate --length 20 --max-page 9 --seed 1` prints a " +
		"reproducible random reference string. With --window, references " +
		"stay mostly within a sliding working set.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		length, _ := cmd.Flags().GetInt("length")
		maxPage, _ := cmd.Flags().GetInt("max-page")
		seed, _ := cmd.Flags().GetUint64("seed")
		window, _ := cmd.Flags().GetInt("window")

		if maxPage < 0 {
			return fmt.Errorf("max page must not be negative, got %d", maxPage)
		}

		var refs []int
		if window > 0 {
			refs = refstring.GenerateWithLocality(length, maxPage, window, seed)
		} else {
			refs = refstring.Generate(length, maxPage, seed)
		}

		_, err := fmt.Fprintln(cmd.OutOrStdout(), refstring.Format(refs))

		return err
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().Int("length", 20, "Number of references")
	generateCmd.Flags().Int("max-page", 9, "Largest page number")
	generateCmd.Flags().Uint64("seed", 1, "Random seed")
	generateCmd.Flags().Int("window", 0, "Working-set size; 0 disables locality")
}
