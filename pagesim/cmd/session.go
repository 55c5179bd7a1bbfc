package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/simulation"
	"github.com/sarchlab/pagesim/tracing"
)

// addSessionFlags adds the flags that decide where the runs of a command are
// kept.
func addSessionFlags(c *cobra.Command) {
	c.Flags().Bool("record", false, "Record the runs in a SQLite database")
	c.Flags().String("output", "", "Database name without extension "+
		"(default from "+DBEnv+", or a unique name)")
	c.Flags().String("trace-file", "", "Also write the runs into this file "+
		"as a JSON array")
}

// applySessionFlags configures recording and the trace file of b. The
// returned tracer is nil if no trace file was requested.
func applySessionFlags(
	cmd *cobra.Command,
	b simulation.Builder,
) (simulation.Builder, *tracing.JSONTracer, error) {
	record, _ := cmd.Flags().GetBool("record")
	traceFile, _ := cmd.Flags().GetString("trace-file")

	if record {
		b = b.WithOutputFileName(stringFlagOrEnv(cmd, "output", DBEnv))
	} else {
		b = b.WithoutRecording()
	}

	if traceFile == "" {
		return b, nil, nil
	}

	t, err := tracing.NewJSONFileTracer(traceFile)
	if err != nil {
		return b, nil, err
	}

	return b.WithTracer(t), t, nil
}
