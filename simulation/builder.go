package simulation

import (
	"github.com/rs/xid"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/idgen"
	"github.com/sarchlab/pagesim/monitoring"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	monitorOn      bool
	monitorPort    int
	recordingOn    bool
	outputFileName string
	tracers        []tracing.Tracer
	idGenerator    idgen.Generator
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		monitorOn:   true,
		recordingOn: true,
	}
}

// WithoutMonitoring sets the simulation to not use monitoring.
func (b Builder) WithoutMonitoring() Builder {
	b.monitorOn = false
	return b
}

// WithMonitorPort sets the port number for the monitoring server.
func (b Builder) WithMonitorPort(port int) Builder {
	b.monitorPort = port
	return b
}

// WithOutputFileName sets the custom output file name for the data recorder.
func (b Builder) WithOutputFileName(filename string) Builder {
	b.outputFileName = filename
	return b
}

// WithoutRecording sets the simulation to not store runs in a database.
func (b Builder) WithoutRecording() Builder {
	b.recordingOn = false
	return b
}

// WithTracer adds a tracer that receives every run.
func (b Builder) WithTracer(t tracing.Tracer) Builder {
	b.tracers = append(b.tracers[:len(b.tracers):len(b.tracers)], t)
	return b
}

// WithIDGenerator sets the generator that names the runs.
func (b Builder) WithIDGenerator(g idgen.Generator) Builder {
	b.idGenerator = g
	return b
}

func (b Builder) parametersMustBeValid() {
	if !b.monitorOn && b.monitorPort != 0 {
		panic("monitor port cannot be set when monitoring is disabled")
	}

	if !b.recordingOn && b.outputFileName != "" {
		panic("output file cannot be set when recording is disabled")
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{
		id:      xid.New().String(),
		idGen:   b.idGenerator,
		tracers: tracing.NewMultiTracer(b.tracers...),
		runs:    make(map[string]*replacement.Result),
	}

	if s.idGen == nil {
		s.idGen = idgen.NewParallel()
	}

	if b.recordingOn {
		outputPath := b.outputFileName
		if outputPath == "" {
			outputPath = "pagesim_sim_" + s.id
		}

		s.dataRecorder = datarecording.New(outputPath)
		s.execRecorder = datarecording.NewExecRecorder(s.dataRecorder)
		s.execRecorder.Start()
		s.execRecorder.Add("Simulation ID", s.ID())

		s.dbTracer = tracing.NewDBTracer(s.dataRecorder)
		s.tracers.Add(s.dbTracer)
	}

	if b.monitorOn {
		s.monitor = monitoring.NewMonitor()
		if b.monitorPort > 0 {
			s.monitor.WithPortNumber(b.monitorPort)
		}
		s.monitor.RegisterSimulator(s)
		s.monitorPort = s.monitor.StartServer()
	}

	return s
}
