package simulation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/sarchlab/pagesim/datarecording"
	"github.com/sarchlab/pagesim/idgen"
	"github.com/sarchlab/pagesim/replacement"
	"github.com/sarchlab/pagesim/tracing"
)

var textbook = []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2}

var _ = Describe("Simulation", func() {
	var (
		mockCtrl   *gomock.Controller
		tracer     *MockTracer
		simulation *Simulation
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		tracer = NewMockTracer(mockCtrl)

		simulation = MakeBuilder().
			WithoutMonitoring().
			WithoutRecording().
			WithIDGenerator(idgen.NewSequential()).
			WithTracer(tracer).
			Build()
	})

	AfterEach(func() {
		mockCtrl.Finish()
		simulation.Terminate()
	})

	It("should run and register a simulation", func() {
		tracer.EXPECT().Trace("1", gomock.Any()).
			Do(func(_ string, r *replacement.Result) {
				Expect(r.Faults).To(Equal(9))
			})

		id, r, err := simulation.Run(replacement.LRU, textbook, 3)

		Expect(err).ToNot(HaveOccurred())
		Expect(id).To(Equal("1"))
		Expect(r.Policy).To(Equal(replacement.LRU))
		Expect(simulation.RunIDs()).To(Equal([]string{"1"}))

		stored, found := simulation.GetRun("1")
		Expect(found).To(BeTrue())
		Expect(stored).To(BeIdenticalTo(r))
	})

	It("should not register failed simulations", func() {
		_, _, err := simulation.Run(replacement.FIFO, textbook, 0)

		Expect(err).To(MatchError(replacement.ErrInvalidFrameCount))
		Expect(simulation.RunIDs()).To(BeEmpty())
	})

	It("should report tracer failures", func() {
		boom := errors.New("boom")
		tracer.EXPECT().Trace("1", gomock.Any()).Return(boom)

		id, r, err := simulation.Run(replacement.Optimal, textbook, 3)

		Expect(err).To(MatchError(boom))
		Expect(id).To(Equal("1"))
		Expect(r.Faults).To(Equal(7))
		Expect(simulation.RunIDs()).To(Equal([]string{"1"}))
	})

	It("should compare all policies", func() {
		gomock.InOrder(
			tracer.EXPECT().Trace("1", gomock.Any()),
			tracer.EXPECT().Trace("2", gomock.Any()),
			tracer.EXPECT().Trace("3", gomock.Any()),
		)

		ids, results, err := simulation.Compare(textbook, 3)

		Expect(err).ToNot(HaveOccurred())
		Expect(ids).To(Equal([]string{"1", "2", "3"}))
		Expect(results).To(HaveLen(3))
		Expect(results[0].Policy).To(Equal(replacement.FIFO))
		Expect(results[1].Policy).To(Equal(replacement.LRU))
		Expect(results[2].Policy).To(Equal(replacement.Optimal))

		r, _ := simulation.GetRun("2")
		Expect(r).To(BeIdenticalTo(results[1]))
	})

	It("should not find unknown runs", func() {
		_, found := simulation.GetRun("42")

		Expect(found).To(BeFalse())
	})
})

var _ = Describe("Builder", func() {
	It("should refuse a monitor port without monitoring", func() {
		Expect(func() {
			MakeBuilder().WithoutMonitoring().WithMonitorPort(3000).Build()
		}).To(Panic())
	})

	It("should refuse an output file without recording", func() {
		Expect(func() {
			MakeBuilder().
				WithoutMonitoring().
				WithoutRecording().
				WithOutputFileName("x").
				Build()
		}).To(Panic())
	})

	It("should record runs", func() {
		path := filepath.Join(GinkgoT().TempDir(), "recording")
		s := MakeBuilder().
			WithoutMonitoring().
			WithOutputFileName(path).
			WithIDGenerator(idgen.NewSequential()).
			Build()

		Expect(s.GetDataRecorder()).ToNot(BeNil())

		_, expected, err := s.Run(replacement.FIFO, textbook, 3)
		Expect(err).ToNot(HaveOccurred())
		s.Terminate()

		reader, err := datarecording.NewReader(path + ".sqlite3")
		Expect(err).ToNot(HaveOccurred())
		defer reader.Close()

		runs := tracing.NewRunReader(reader)
		ids, err := runs.ListRunIDs(context.Background())
		Expect(err).ToNot(HaveOccurred())
		Expect(ids).To(Equal([]string{"1"}))

		loaded, err := runs.LoadRun(context.Background(), "1")
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded).To(Equal(expected))

		reader.MapTable(datarecording.ExecTable, datarecording.ExecInfo{})
		rows, err := reader.Query(context.Background(), datarecording.ExecTable,
			datarecording.QueryParams{
				Where: "Property = ?",
				Args:  []any{"Simulation ID"},
			})
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(HaveLen(1))
		Expect(rows[0].(*datarecording.ExecInfo).Value).To(Equal(s.ID()))
	})

	It("should serve runs through the monitor", func() {
		s := MakeBuilder().
			WithoutRecording().
			WithIDGenerator(idgen.NewSequential()).
			Build()
		defer s.Terminate()

		Expect(s.GetMonitor()).ToNot(BeNil())
		Expect(s.MonitorPort()).To(BeNumerically(">", 0))

		_, _, err := s.Run(replacement.FIFO, textbook, 3)
		Expect(err).ToNot(HaveOccurred())

		rsp, err := http.Get(
			"http://localhost:" + strconv.Itoa(s.MonitorPort()) + "/api/runs")
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()

		var ids []string
		Expect(json.NewDecoder(rsp.Body).Decode(&ids)).To(Succeed())
		Expect(ids).To(Equal([]string{"1"}))
	})

	It("should register comparisons made through the monitor", func() {
		s := MakeBuilder().
			WithoutRecording().
			WithIDGenerator(idgen.NewSequential()).
			Build()
		defer s.Terminate()

		url := "http://localhost:" + strconv.Itoa(s.MonitorPort())

		rsp, err := http.Get(url + "/api/compare?refs=7,0,1,2,0,3,0,4,2,3,0,3,2")
		Expect(err).ToNot(HaveOccurred())
		defer rsp.Body.Close()

		var compared struct {
			IDs []string `json:"ids"`
		}
		Expect(json.NewDecoder(rsp.Body).Decode(&compared)).To(Succeed())
		Expect(compared.IDs).To(Equal([]string{"1", "2", "3"}))
		Expect(s.RunIDs()).To(Equal([]string{"1", "2", "3"}))

		r, found := s.GetRun("3")
		Expect(found).To(BeTrue())
		Expect(r.Policy).To(Equal(replacement.Optimal))
		Expect(r.Faults).To(Equal(7))
	})
})
