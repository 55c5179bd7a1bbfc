package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/simulation"
	"github.com/sarchlab/pagesim/tracing"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one policy and print every step.",
	Long: "`run --policy lru --frames 3 --refs 7,0,1,2,0` simulates one " +
		"policy and prints the frames, the status and an explanation of " +
		"every step.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		policyName, _ := cmd.Flags().GetString("policy")
		refsStr, _ := cmd.Flags().GetString("refs")
		format, _ := cmd.Flags().GetString("format")
		frames := intFlagOrEnv(cmd, "frames", FramesEnv)

		policy, err := replacement.ParsePolicy(policyName)
		if err != nil {
			return err
		}

		err = frameCountMustBeValid(frames)
		if err != nil {
			return err
		}

		builder, traceFile, err := applySessionFlags(cmd,
			simulation.MakeBuilder().WithoutMonitoring())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		var jsonTracer *tracing.JSONTracer
		switch format {
		case "table":
		case "csv":
			builder = builder.WithTracer(tracing.NewCSVTracer(out))
		case "json":
			jsonTracer, err = tracing.NewJSONTracer(out)
			if err != nil {
				return err
			}

			builder = builder.WithTracer(jsonTracer)
		default:
			return fmt.Errorf("unknown format %q, use table, csv or json", format)
		}

		s := builder.Build()
		defer s.Terminate()

		id, result, err := s.Run(policy, refstring.Parse(refsStr), frames)
		if err != nil {
			return err
		}

		if traceFile != nil {
			err = traceFile.Finish()
			if err != nil {
				return err
			}
		}

		if jsonTracer != nil {
			return jsonTracer.Finish()
		}

		if format == "table" {
			return printSteps(out, id, result)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("policy", "fifo", "Replacement policy: fifo, lru or optimal")
	runCmd.Flags().Int("frames", 3, "Number of frames (default from "+FramesEnv+")")
	runCmd.Flags().String("refs", "", "Comma-separated reference string")
	runCmd.Flags().String("format", "table", "Output format: table, csv or json")
	addSessionFlags(runCmd)
}
