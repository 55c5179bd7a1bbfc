package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/analysis"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/simulation"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare FIFO, LRU and Optimal on the same input.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		refsStr, _ := cmd.Flags().GetString("refs")
		frames := intFlagOrEnv(cmd, "frames", FramesEnv)

		err := frameCountMustBeValid(frames)
		if err != nil {
			return err
		}

		builder, traceFile, err := applySessionFlags(cmd,
			simulation.MakeBuilder().WithoutMonitoring())
		if err != nil {
			return err
		}

		s := builder.Build()
		defer s.Terminate()

		_, results, err := s.Compare(refstring.Parse(refsStr), frames)
		if err != nil {
			return err
		}

		if traceFile != nil {
			err = traceFile.Finish()
			if err != nil {
				return err
			}
		}

		summaries := make([]analysis.Summary, len(results))
		for i, r := range results {
			summaries[i] = analysis.Summarize(r)
		}

		return printSummaries(cmd.OutOrStdout(), summaries)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().Int("frames", 3, "Number of frames (default from "+FramesEnv+")")
	compareCmd.Flags().String("refs", "", "Comma-separated reference string")
	addSessionFlags(compareCmd)
}
