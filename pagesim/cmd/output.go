package cmd

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/sarchlab/pagesim/analysis"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/replacement"
)

func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// printSteps prints one row per step followed by the totals.
func printSteps(w io.Writer, id string, r *replacement.Result) error {
	fmt.Fprintf(w, "Run %s: %s with %d frames\n",
		id, r.Policy.DisplayName(), r.FrameCount)

	tw := newTabWriter(w)
	fmt.Fprintln(tw, "STEP\tPAGE\tFRAMES\tSTATUS\tREPLACED\tEXPLANATION")

	for _, s := range r.Steps {
		replaced := "-"
		if victim, ok := s.Victim(); ok {
			replaced = strconv.Itoa(victim)
		}

		fmt.Fprintf(tw, "%d\t%d\t[%s]\t%s\t%s\t%s\n",
			s.Step, s.Page, refstring.Format(s.Frames), s.Status,
			replaced, s.Explanation)
	}

	err := tw.Flush()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "Faults: %d, Hits: %d, Fault rate: %.2f%%\n",
		r.Faults, r.Hits, r.FaultRate()*100)

	return err
}

func printSummaries(w io.Writer, summaries []analysis.Summary) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "POLICY\tFAULTS\tHITS\tEVICTIONS\tFAULT RATE\tHIT RATE")

	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%.2f%%\t%.2f%%\n",
			s.Policy.DisplayName(), s.Faults, s.Hits, s.Evictions,
			s.FaultRate*100, s.HitRate*100)
	}

	err := tw.Flush()
	if err != nil {
		return err
	}

	best := analysis.Best(summaries)
	names := make([]string, len(best))
	for i, s := range best {
		names[i] = s.Policy.DisplayName()
	}

	_, err = fmt.Fprintf(w, "Fewest faults: %s\n", joinNames(names))

	return err
}

func printCurve(
	w io.Writer,
	policy replacement.Policy,
	curve []analysis.CurvePoint,
	anomalies []analysis.Anomaly,
) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "FRAMES\tFAULTS")

	for _, p := range curve {
		fmt.Fprintf(tw, "%d\t%d\n", p.Frames, p.Faults)
	}

	err := tw.Flush()
	if err != nil {
		return err
	}

	if len(anomalies) == 0 {
		_, err = fmt.Fprintf(w, "No Bélády's anomaly under %s.\n",
			policy.DisplayName())
		return err
	}

	for _, a := range anomalies {
		_, err = fmt.Fprintf(w,
			"Bélády's anomaly under %s: %d frames fault %d times, "+
				"but %d frames only %d times.\n",
			policy.DisplayName(), a.Frames, a.Faults,
			a.PreviousFrames, a.PreviousFaults)
		if err != nil {
			return err
		}
	}

	return nil
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "-"
	case 1:
		return names[0]
	}

	s := names[0]
	for _, n := range names[1 : len(names)-1] {
		s += ", " + n
	}

	return s + " and " + names[len(names)-1]
}
