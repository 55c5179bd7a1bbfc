// Package simulation ties page-replacement runs to the services around them:
// run IDs, recording, tracing and the monitoring server.
package simulation

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/sarchlab/pagesim/analysis"
	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/idgen"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/tracing"
)

// A Simulation runs page-replacement simulations and keeps their results.
type Simulation struct {
	id    string
	idGen idgen.Generator

	dataRecorder datarecording.DataRecorder
	execRecorder *datarecording.ExecRecorder
	dbTracer     *tracing.DBTracer
	tracers      *tracing.MultiTracer
	traceLock    sync.Mutex
	monitor      *monitoring.Monitor
	monitorPort  int

	lock   sync.RWMutex
	runs   map[string]*replacement.Result
	runIDs []string
}

// ID returns the ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// GetDataRecorder returns the data recorder used in the simulation. It is nil
// if recording is disabled.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// GetMonitor returns the monitor used in the simulation.
func (s *Simulation) GetMonitor() *monitoring.Monitor {
	return s.monitor
}

// MonitorPort returns the port the monitor listens on, or 0 without a
// monitor.
func (s *Simulation) MonitorPort() int {
	return s.monitorPort
}

// Run simulates policy and registers the result under a new ID. The result
// is returned even if a tracer fails.
func (s *Simulation) Run(
	policy replacement.Policy,
	refs []int,
	frameCount int,
) (string, *replacement.Result, error) {
	result, err := replacement.Simulate(policy, refs, frameCount)
	if err != nil {
		return "", nil, err
	}

	id := s.register(result)

	err = s.trace(id, result)

	return id, result, err
}

// Compare simulates every policy on the same input and registers each
// result. The IDs and results follow replacement.Policies order.
func (s *Simulation) Compare(
	refs []int,
	frameCount int,
) ([]string, []*replacement.Result, error) {
	results, err := analysis.RunAll(refs, frameCount)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]string, len(results))
	for i, result := range results {
		ids[i] = s.register(result)

		err := s.trace(ids[i], result)
		if err != nil {
			return ids, results, err
		}
	}

	return ids, results, nil
}

func (s *Simulation) register(result *replacement.Result) string {
	id := s.idGen.Generate()

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, found := s.runs[id]; found {
		panic("run " + id + " already registered")
	}

	s.runs[id] = result
	s.runIDs = append(s.runIDs, id)

	return id
}

// trace feeds one run to the tracers. Tracers are not required to be safe
// for concurrent use.
func (s *Simulation) trace(id string, result *replacement.Result) error {
	s.traceLock.Lock()
	defer s.traceLock.Unlock()

	err := s.tracers.Trace(id, result)
	if err != nil {
		return fmt.Errorf("tracing run %s: %w", id, err)
	}

	return nil
}

// RunIDs returns the IDs of all runs in the order they were registered.
func (s *Simulation) RunIDs() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ids := make([]string, len(s.runIDs))
	copy(ids, s.runIDs)

	return ids
}

// GetRun returns the result of a run.
func (s *Simulation) GetRun(id string) (*replacement.Result, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	r, found := s.runs[id]

	return r, found
}

// Terminate stops the monitor and closes the recording.
func (s *Simulation) Terminate() {
	if s.monitor != nil {
		err := s.monitor.StopServer(context.Background())
		if err != nil {
			panic(err)
		}
	}

	if s.dataRecorder == nil {
		return
	}

	s.execRecorder.Add("Runs", strconv.Itoa(len(s.RunIDs())))
	s.execRecorder.End()
	s.dbTracer.Flush()

	err := s.dataRecorder.Close()
	if err != nil {
		panic(err)
	}
}
