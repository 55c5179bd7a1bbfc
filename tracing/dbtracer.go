package tracing

import (
	"sync"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/replacement"
)

// Table names used by DBTracer.
const (
	RunTable  = "pagesim_runs"
	StepTable = "pagesim_steps"
)

// DBTracer stores runs and their steps through a DataRecorder.
type DBTracer struct {
	mu      sync.Mutex
	backend datarecording.DataRecorder
}

// NewDBTracer creates a DBTracer and the tables it writes to.
func NewDBTracer(dataRecorder datarecording.DataRecorder) *DBTracer {
	dataRecorder.CreateTable(RunTable, runTableEntry{})
	dataRecorder.CreateTable(StepTable, stepTableEntry{})

	t := &DBTracer{
		backend: dataRecorder,
	}

	atexit.Register(func() {
		t.Flush()
	})

	return t
}

// Trace buffers the run and all of its steps.
func (t *DBTracer) Trace(id string, r *replacement.Result) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.InsertData(RunTable, newRunEntry(id, r))

	for _, s := range r.Steps {
		t.backend.InsertData(StepTable, newStepEntry(id, s))
	}

	return nil
}

// Flush writes the buffered runs into the database.
func (t *DBTracer) Flush() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.backend.Flush()
}
