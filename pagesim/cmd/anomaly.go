package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/analysis"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/replacement"
)

var anomalyCmd = &cobra.Command{
	Use:   "anomaly",
	Short: "Search a range of frame counts for Bélády's anomaly.",
	Long: "`anomaly --policy fifo --refs 1,2,3,4,1,2,5,1,2,3,4,5 --min 1 " +
		"--max 5` prints the number of faults for every frame count and " +
		"reports where adding a frame increased the faults.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		policyName, _ := cmd.Flags().GetString("policy")
		refsStr, _ := cmd.Flags().GetString("refs")
		minFrames, _ := cmd.Flags().GetInt("min")
		maxFrames, _ := cmd.Flags().GetInt("max")

		policy, err := replacement.ParsePolicy(policyName)
		if err != nil {
			return err
		}

		curve, anomalies, err := analysis.DetectAnomalies(
			policy, refstring.Parse(refsStr), minFrames, maxFrames)
		if err != nil {
			return err
		}

		return printCurve(cmd.OutOrStdout(), policy, curve, anomalies)
	},
}

func init() {
	rootCmd.AddCommand(anomalyCmd)
	anomalyCmd.Flags().String("policy", "fifo", "Replacement policy: fifo, lru or optimal")
	anomalyCmd.Flags().String("refs", "", "Comma-separated reference string")
	anomalyCmd.Flags().Int("min", 1, "Smallest frame count")
	anomalyCmd.Flags().Int("max", 10, "Largest frame count")
}
