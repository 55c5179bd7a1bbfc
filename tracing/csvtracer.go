package tracing

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/sarchlab/pagesim/replacement"
)

var csvHeader = []string{
	"RunID", "Policy", "Step", "Page", "Status", "Replaced",
	"Frames", "Faults", "Hits", "Explanation",
}

// CSVTracer writes one CSV row per step.
type CSVTracer struct {
	w             *csv.Writer
	headerWritten bool
}

// NewCSVTracer creates a CSVTracer that writes to w.
func NewCSVTracer(w io.Writer) *CSVTracer {
	return &CSVTracer{w: csv.NewWriter(w)}
}

// Trace writes every step of the run. The header is written before the
// first run.
func (t *CSVTracer) Trace(id string, r *replacement.Result) error {
	if !t.headerWritten {
		err := t.w.Write(csvHeader)
		if err != nil {
			return err
		}

		t.headerWritten = true
	}

	for _, s := range r.Steps {
		e := newStepEntry(id, s)

		replaced := ""
		if e.HasReplaced {
			replaced = strconv.Itoa(e.Replaced)
		}

		err := t.w.Write([]string{
			id,
			r.Policy.String(),
			strconv.Itoa(e.Step),
			strconv.Itoa(e.Page),
			e.Status,
			replaced,
			e.Frames,
			strconv.Itoa(e.Faults),
			strconv.Itoa(e.Hits),
			e.Explanation,
		})
		if err != nil {
			return err
		}
	}

	t.w.Flush()

	return t.w.Error()
}
