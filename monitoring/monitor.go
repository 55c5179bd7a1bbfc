// Package monitoring serves page-replacement simulations over HTTP, so that
// a browser can run, replay and compare them.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/pagesim/analysis"
	"github.com/sarchlab/pagesim/monitoring/web"
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/replacement"
)

// DefaultFrameCount is used when a request does not name a frame count.
const DefaultFrameCount = 3

// Default frame range of the anomaly search.
const (
	DefaultMinFrames = 1
	DefaultMaxFrames = 10
)

// A Simulator runs simulations and keeps their results.
type Simulator interface {
	Run(
		policy replacement.Policy,
		refs []int,
		frameCount int,
	) (string, *replacement.Result, error)
	Compare(
		refs []int,
		frameCount int,
	) ([]string, []*replacement.Result, error)
	RunIDs() []string
	GetRun(id string) (*replacement.Result, bool)
}

// Monitor turns a simulator into a web server.
type Monitor struct {
	lock       sync.Mutex
	simulator  Simulator
	portNumber int
	server     *http.Server
	listener   net.Listener
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSimulator sets the simulator that runs the requested simulations.
// Without a simulator, runs are simulated directly and not kept.
func (m *Monitor) RegisterSimulator(s Simulator) {
	m.simulator = s
}

// Router returns the handler of all the monitor routes.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/policies", m.listPolicies)
	r.HandleFunc("/api/simulate/{policy}", m.simulate)
	r.HandleFunc("/api/compare", m.compare)
	r.HandleFunc("/api/anomaly/{policy}", m.anomaly)
	r.HandleFunc("/api/runs", m.listRuns)
	r.HandleFunc("/api/run/{id}", m.getRun)
	r.HandleFunc("/api/run/{id}/step/{index}", m.getStep)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts the monitor as a web server and returns the port it
// listens on.
func (m *Monitor) StartServer() int {
	m.lock.Lock()
	defer m.lock.Unlock()

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	port := listener.Addr().(*net.TCPAddr).Port
	fmt.Fprintf(os.Stderr,
		"Monitoring simulation with http://localhost:%d\n", port)

	m.listener = listener
	m.server = &http.Server{
		Handler:           m.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	server := m.server
	go func() {
		err := server.Serve(listener)
		if !errors.Is(err, http.ErrServerClosed) {
			dieOnErr(err)
		}
	}()

	return port
}

// StopServer shuts the web server down.
func (m *Monitor) StopServer(ctx context.Context) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.server == nil {
		return nil
	}

	err := m.server.Shutdown(ctx)
	m.server = nil
	m.listener = nil

	return err
}

type policyRsp struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

func (m *Monitor) listPolicies(w http.ResponseWriter, _ *http.Request) {
	rsp := make([]policyRsp, 0, len(replacement.Policies))
	for _, p := range replacement.Policies {
		rsp = append(rsp, policyRsp{
			Name:        p.String(),
			DisplayName: p.DisplayName(),
		})
	}

	writeJSON(w, rsp)
}

type runRsp struct {
	ID string `json:"id,omitempty"`
	*replacement.Result
}

func (m *Monitor) simulate(w http.ResponseWriter, r *http.Request) {
	policy, ok := policyOr400(w, mux.Vars(r)["policy"])
	if !ok {
		return
	}

	frames, ok := intParamOr400(w, r, "frames", DefaultFrameCount)
	if !ok {
		return
	}

	refs := refstring.Parse(r.URL.Query().Get("refs"))

	id, result, err := m.run(policy, refs, frames)
	if errors.Is(err, replacement.ErrInvalidFrameCount) {
		badRequest(w, err)
		return
	}
	dieOnErr(err)

	writeJSON(w, runRsp{ID: id, Result: result})
}

func (m *Monitor) run(
	policy replacement.Policy,
	refs []int,
	frames int,
) (string, *replacement.Result, error) {
	if m.simulator == nil {
		result, err := replacement.Simulate(policy, refs, frames)
		return "", result, err
	}

	return m.simulator.Run(policy, refs, frames)
}

type compareRsp struct {
	IDs       []string           `json:"ids,omitempty"`
	Summaries []analysis.Summary `json:"summaries"`
	Best      []analysis.Summary `json:"best"`
}

func (m *Monitor) compare(w http.ResponseWriter, r *http.Request) {
	frames, ok := intParamOr400(w, r, "frames", DefaultFrameCount)
	if !ok {
		return
	}

	refs := refstring.Parse(r.URL.Query().Get("refs"))

	ids, results, err := m.runAll(refs, frames)
	if errors.Is(err, replacement.ErrInvalidFrameCount) {
		badRequest(w, err)
		return
	}
	dieOnErr(err)

	summaries := make([]analysis.Summary, len(results))
	for i, result := range results {
		summaries[i] = analysis.Summarize(result)
	}

	writeJSON(w, compareRsp{
		IDs:       ids,
		Summaries: summaries,
		Best:      analysis.Best(summaries),
	})
}

func (m *Monitor) runAll(
	refs []int,
	frames int,
) ([]string, []*replacement.Result, error) {
	if m.simulator == nil {
		results, err := analysis.RunAll(refs, frames)
		return nil, results, err
	}

	return m.simulator.Compare(refs, frames)
}

type anomalyRsp struct {
	Policy    replacement.Policy    `json:"policy"`
	Curve     []analysis.CurvePoint `json:"curve"`
	Anomalies []analysis.Anomaly    `json:"anomalies"`
}

func (m *Monitor) anomaly(w http.ResponseWriter, r *http.Request) {
	policy, ok := policyOr400(w, mux.Vars(r)["policy"])
	if !ok {
		return
	}

	minFrames, ok := intParamOr400(w, r, "min", DefaultMinFrames)
	if !ok {
		return
	}

	maxFrames, ok := intParamOr400(w, r, "max", DefaultMaxFrames)
	if !ok {
		return
	}

	refs := refstring.Parse(r.URL.Query().Get("refs"))

	curve, anomalies, err := analysis.DetectAnomalies(
		policy, refs, minFrames, maxFrames)
	if errors.Is(err, analysis.ErrInvalidRange) {
		badRequest(w, err)
		return
	}
	dieOnErr(err)

	writeJSON(w, anomalyRsp{
		Policy:    policy,
		Curve:     curve,
		Anomalies: anomalies,
	})
}

func (m *Monitor) listRuns(w http.ResponseWriter, _ *http.Request) {
	ids := []string{}
	if m.simulator != nil {
		ids = append(ids, m.simulator.RunIDs()...)
	}

	writeJSON(w, ids)
}

func (m *Monitor) getRun(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	result := m.findRunOr404(w, id)
	if result == nil {
		return
	}

	writeJSON(w, runRsp{ID: id, Result: result})
}

func (m *Monitor) getStep(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		badRequest(w, err)
		return
	}

	result := m.findRunOr404(w, vars["id"])
	if result == nil {
		return
	}

	if index < 1 || index > len(result.Steps) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintf(w, "Step %d not found", index)

		return
	}

	writeJSON(w, result.Steps[index-1])
}

func (m *Monitor) findRunOr404(
	w http.ResponseWriter,
	id string,
) *replacement.Result {
	var result *replacement.Result
	if m.simulator != nil {
		result, _ = m.simulator.GetRun(id)
	}

	if result == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Run not found"))
		dieOnErr(err)
	}

	return result
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func policyOr400(
	w http.ResponseWriter,
	name string,
) (replacement.Policy, bool) {
	policy, err := replacement.ParsePolicy(name)
	if err != nil {
		badRequest(w, err)
		return 0, false
	}

	return policy, true
}

// intParamOr400 reads an integer query parameter, falling back to def when
// the parameter is absent.
func intParamOr400(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	def int,
) (int, bool) {
	str := r.URL.Query().Get(name)
	if str == "" {
		return def, true
	}

	value, err := strconv.Atoi(str)
	if err != nil {
		badRequest(w, fmt.Errorf("invalid %s %q", name, str))
		return 0, false
	}

	return value, true
}

func badRequest(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, "Error: %s", err)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
