// Package tracing exports the steps of page-replacement runs to CSV files,
// JSON documents and SQLite databases.
package tracing

import (
	"errors"

	"github.com/sarchlab/pagesim/replacement"
)

// A Tracer receives every completed run.
type Tracer interface {
	Trace(id string, r *replacement.Result) error
}

// MultiTracer forwards every run to a list of tracers.
type MultiTracer struct {
	tracers []Tracer
}

// NewMultiTracer creates a tracer that fans out to tracers.
func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	return &MultiTracer{tracers: tracers}
}

// Add appends another tracer.
func (t *MultiTracer) Add(tracer Tracer) {
	t.tracers = append(t.tracers, tracer)
}

// Trace forwards the run to all tracers, even if some of them fail.
func (t *MultiTracer) Trace(id string, r *replacement.Result) error {
	var errs []error
	for _, tracer := range t.tracers {
		if err := tracer.Trace(id, r); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
