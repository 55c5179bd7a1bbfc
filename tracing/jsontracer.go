package tracing

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/replacement"
)

// jsonRun is the document written for every run.
type jsonRun struct {
	ID string `json:"id"`
	*replacement.Result
}

// JSONTracer writes runs as the elements of a JSON array.
type JSONTracer struct {
	w        io.Writer
	closer   io.Closer
	lock     sync.Mutex
	firstRun bool
	finished bool
}

// NewJSONTracer creates a JSONTracer and opens the array. Finish must be
// called to close it.
func NewJSONTracer(w io.Writer) (*JSONTracer, error) {
	_, err := w.Write([]byte("[\n"))
	if err != nil {
		return nil, err
	}

	return &JSONTracer{
		w:        w,
		firstRun: true,
	}, nil
}

// NewJSONFileTracer creates a JSONTracer backed by path. If path is empty a
// unique file name is chosen. Finish closes the file, and it is called at
// exit if nobody else did.
func NewJSONFileTracer(path string) (*JSONTracer, error) {
	if path == "" {
		path = "pagesim_trace_" + xid.New().String() + ".json"
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(os.Stderr, "Recording runs in %s\n", path)

	t, err := NewJSONTracer(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	t.closer = f

	atexit.Register(func() {
		err := t.Finish()
		if err != nil {
			panic(err)
		}
	})

	return t, nil
}

// Trace appends the run to the array.
func (t *JSONTracer) Trace(id string, r *replacement.Result) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.finished {
		return fmt.Errorf("trace %s written after the JSON array was closed", id)
	}

	b, err := json.Marshal(jsonRun{ID: id, Result: r})
	if err != nil {
		return err
	}

	if t.firstRun {
		t.firstRun = false
	} else {
		_, err = t.w.Write([]byte(",\n"))
		if err != nil {
			return err
		}
	}

	_, err = t.w.Write(b)

	return err
}

// Finish closes the JSON array and the file behind it, if any. Calling it
// more than once has no effect.
func (t *JSONTracer) Finish() error {
	t.lock.Lock()
	defer t.lock.Unlock()

	if t.finished {
		return nil
	}

	t.finished = true

	_, err := t.w.Write([]byte("\n]\n"))
	if t.closer != nil {
		err = errors.Join(err, t.closer.Close())
	}

	return err
}
