package tracing

import (
	"context"
	"errors"
	"fmt"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/replacement"
)

// ErrRunNotFound is returned when a recording holds no run with a given ID.
var ErrRunNotFound = errors.New("run not found")

// RunReader loads the runs stored by a DBTracer.
type RunReader struct {
	reader datarecording.DataReader
}

// NewRunReader creates a RunReader on top of reader.
func NewRunReader(reader datarecording.DataReader) *RunReader {
	reader.MapTable(RunTable, runTableEntry{})
	reader.MapTable(StepTable, stepTableEntry{})

	return &RunReader{reader: reader}
}

// ListRunIDs returns the IDs of all recorded runs in recording order.
func (r *RunReader) ListRunIDs(ctx context.Context) ([]string, error) {
	rows, err := r.reader.Query(ctx, RunTable, datarecording.QueryParams{
		OrderBy: "rowid ASC",
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.(*runTableEntry).RunID)
	}

	return ids, nil
}

// LoadRun rebuilds the result of the run with the given ID.
func (r *RunReader) LoadRun(
	ctx context.Context,
	id string,
) (*replacement.Result, error) {
	rows, err := r.reader.Query(ctx, RunTable, datarecording.QueryParams{
		Where: "RunID = ?",
		Args:  []any{id},
		Limit: 1,
	})
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}

	run := rows[0].(*runTableEntry)

	policy, err := replacement.ParsePolicy(run.Policy)
	if err != nil {
		return nil, err
	}

	steps, err := r.loadSteps(ctx, id)
	if err != nil {
		return nil, err
	}

	return &replacement.Result{
		Policy:     policy,
		FrameCount: run.FrameCount,
		References: refstring.Parse(run.RefString),
		Steps:      steps,
		Faults:     run.Faults,
		Hits:       run.Hits,
	}, nil
}

func (r *RunReader) loadSteps(
	ctx context.Context,
	id string,
) ([]replacement.Step, error) {
	rows, err := r.reader.Query(ctx, StepTable, datarecording.QueryParams{
		Where:   "RunID = ?",
		Args:    []any{id},
		OrderBy: "Step ASC",
	})
	if err != nil {
		return nil, err
	}

	steps := make([]replacement.Step, 0, len(rows))
	for _, row := range rows {
		s, err := row.(*stepTableEntry).toStep()
		if err != nil {
			return nil, err
		}

		steps = append(steps, s)
	}

	return steps, nil
}
