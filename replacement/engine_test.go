package replacement_test

import (
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/replacement"
)

var textbook = []int{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2}

type expectedStep struct {
	frames   []int
	status   replacement.Status
	replaced int // -1 for none
}

func f(frames ...int) []int { return frames }

func expectTrace(r *replacement.Result, want []expectedStep) {
	Expect(r.Steps).To(HaveLen(len(want)))

	faults, hits := 0, 0
	for i, w := range want {
		s := r.Steps[i]
		Expect(s.Step).To(Equal(i+1), "step %d", i+1)
		Expect(s.Page).To(Equal(r.References[i]), "step %d", i+1)
		Expect(s.Frames).To(Equal(w.frames), "step %d", i+1)
		Expect(s.Status).To(Equal(w.status), "step %d", i+1)

		victim, evicted := s.Victim()
		if w.replaced < 0 {
			Expect(evicted).To(BeFalse(), "step %d", i+1)
		} else {
			Expect(evicted).To(BeTrue(), "step %d", i+1)
			Expect(victim).To(Equal(w.replaced), "step %d", i+1)
		}

		if w.status == replacement.Hit {
			hits++
		} else {
			faults++
		}
		Expect(s.Faults).To(Equal(faults))
		Expect(s.Hits).To(Equal(hits))
	}
}

var _ = Describe("Simulate", func() {
	const (
		H = replacement.Hit
		F = replacement.Fault
	)

	Context("textbook reference string with 3 frames", func() {
		It("should trace FIFO", func() {
			r, err := replacement.Simulate(replacement.FIFO, textbook, 3)

			Expect(err).ToNot(HaveOccurred())
			expectTrace(r, []expectedStep{
				{f(7), F, -1},
				{f(7, 0), F, -1},
				{f(7, 0, 1), F, -1},
				{f(2, 0, 1), F, 7},
				{f(2, 0, 1), H, -1},
				{f(2, 3, 1), F, 0},
				{f(2, 3, 0), F, 1},
				{f(4, 3, 0), F, 2},
				{f(4, 2, 0), F, 3},
				{f(4, 2, 3), F, 0},
				{f(0, 2, 3), F, 4},
				{f(0, 2, 3), H, -1},
				{f(0, 2, 3), H, -1},
			})
			Expect(r.Faults).To(Equal(10))
			Expect(r.Hits).To(Equal(3))
		})

		It("should trace LRU", func() {
			r, err := replacement.Simulate(replacement.LRU, textbook, 3)

			Expect(err).ToNot(HaveOccurred())
			expectTrace(r, []expectedStep{
				{f(7), F, -1},
				{f(7, 0), F, -1},
				{f(7, 0, 1), F, -1},
				{f(2, 0, 1), F, 7},
				{f(2, 0, 1), H, -1},
				{f(2, 0, 3), F, 1},
				{f(2, 0, 3), H, -1},
				{f(4, 0, 3), F, 2},
				{f(4, 0, 2), F, 3},
				{f(4, 3, 2), F, 0},
				{f(0, 3, 2), F, 4},
				{f(0, 3, 2), H, -1},
				{f(0, 3, 2), H, -1},
			})
			Expect(r.Faults).To(Equal(9))
			Expect(r.Hits).To(Equal(4))
		})

		It("should trace Optimal", func() {
			r, err := replacement.Simulate(replacement.Optimal, textbook, 3)

			Expect(err).ToNot(HaveOccurred())
			expectTrace(r, []expectedStep{
				{f(7), F, -1},
				{f(7, 0), F, -1},
				{f(7, 0, 1), F, -1},
				{f(2, 0, 1), F, 7},
				{f(2, 0, 1), H, -1},
				{f(2, 0, 3), F, 1},
				{f(2, 0, 3), H, -1},
				{f(2, 4, 3), F, 0},
				{f(2, 4, 3), H, -1},
				{f(2, 4, 3), H, -1},
				{f(2, 0, 3), F, 4},
				{f(2, 0, 3), H, -1},
				{f(2, 0, 3), H, -1},
			})
			Expect(r.Faults).To(Equal(7))
			Expect(r.Hits).To(Equal(6))
		})
	})

	Context("explanations", func() {
		It("should describe hits, empty frames and evictions", func() {
			r, _ := replacement.SimulateFIFO(textbook, 3)

			Expect(r.Steps[0].Explanation).To(Equal("Page 7 loaded into empty frame"))
			Expect(r.Steps[3].Explanation).To(Equal(
				"Page 2 caused a fault. Removed page 7 (first in, first out)"))
			Expect(r.Steps[4].Explanation).To(Equal("Page 0 is already in memory"))
		})

		It("should give the LRU rationale", func() {
			r, _ := replacement.SimulateLRU(textbook, 3)

			Expect(r.Steps[5].Explanation).To(Equal(
				"Page 3 caused a fault. Removed page 1 (least recently used)"))
		})

		It("should tell whether the Optimal victim recurs", func() {
			r, _ := replacement.SimulateOptimal(textbook, 3)

			Expect(r.Steps[3].Explanation).To(Equal(
				"Page 2 caused a fault. Removed page 7 (not used again)"))
			Expect(r.Steps[7].Explanation).To(Equal(
				"Page 4 caused a fault. Removed page 0 " +
					"(next used farthest in the future)"))
		})
	})

	DescribeTable("empty reference string",
		func(p replacement.Policy) {
			r, err := replacement.Simulate(p, nil, 3)

			Expect(err).ToNot(HaveOccurred())
			Expect(r.Steps).To(BeEmpty())
			Expect(r.Faults).To(BeZero())
			Expect(r.Hits).To(BeZero())
			Expect(r.FaultRate()).To(BeZero())
		},
		Entry("FIFO", replacement.FIFO),
		Entry("LRU", replacement.LRU),
		Entry("Optimal", replacement.Optimal),
	)

	DescribeTable("single frame",
		func(p replacement.Policy) {
			r, err := replacement.Simulate(p, []int{1, 1, 2, 3, 3, 1}, 1)

			Expect(err).ToNot(HaveOccurred())
			expectTrace(r, []expectedStep{
				{f(1), F, -1},
				{f(1), H, -1},
				{f(2), F, 1},
				{f(3), F, 2},
				{f(3), H, -1},
				{f(1), F, 3},
			})
		},
		Entry("FIFO", replacement.FIFO),
		Entry("LRU", replacement.LRU),
		Entry("Optimal", replacement.Optimal),
	)

	It("should accept negative and large page numbers", func() {
		r, err := replacement.SimulateLRU([]int{-5, 1 << 40, -5}, 2)

		Expect(err).ToNot(HaveOccurred())
		Expect(r.Steps[2].Frames).To(Equal([]int{-5, 1 << 40}))
		Expect(r.Steps[2].Status).To(Equal(replacement.Hit))
	})

	It("should reject a frame count below one", func() {
		_, err := replacement.Simulate(replacement.FIFO, textbook, 0)
		Expect(err).To(MatchError(replacement.ErrInvalidFrameCount))

		_, err = replacement.Simulate(replacement.LRU, textbook, -2)
		Expect(err).To(MatchError(replacement.ErrInvalidFrameCount))
	})

	DescribeTable("more frames than a slice can hold",
		func(policy replacement.Policy) {
			r, err := replacement.Simulate(policy, []int{1, 2, 1}, math.MaxInt)

			Expect(err).ToNot(HaveOccurred())
			Expect(r.FrameCount).To(Equal(math.MaxInt))
			Expect(r.Faults).To(Equal(2))
			Expect(r.Hits).To(Equal(1))
			Expect(r.Steps[2].Frames).To(Equal([]int{1, 2}))
			Expect(r.Evictions()).To(Equal(0))
		},
		Entry("FIFO", replacement.FIFO),
		Entry("LRU", replacement.LRU),
		Entry("Optimal", replacement.Optimal),
	)

	It("should reject an unknown policy", func() {
		_, err := replacement.Simulate(replacement.Policy(9), textbook, 3)

		Expect(err).To(MatchError(replacement.ErrUnknownPolicy))
	})

	It("should not share frame snapshots between steps", func() {
		r, _ := replacement.SimulateFIFO(textbook, 3)

		r.Steps[2].Frames[0] = 99

		Expect(r.Steps[3].Frames).To(Equal([]int{2, 0, 1}))
		Expect(r.Steps[4].Frames).To(Equal([]int{2, 0, 1}))
	})

	It("should not be affected by later changes to the input", func() {
		refs := []int{1, 2, 3}
		r, _ := replacement.SimulateFIFO(refs, 2)

		refs[0] = 42

		Expect(r.References).To(Equal([]int{1, 2, 3}))
	})

	It("should encode steps as JSON", func() {
		r, _ := replacement.SimulateFIFO([]int{1, 2, 3}, 2)

		b, err := json.Marshal(r.Steps[2])

		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(MatchJSON(`{
			"step": 3, "page": 3, "frames": [3, 2], "status": "fault",
			"replaced": 1, "faults": 3, "hits": 0,
			"explanation": "Page 3 caused a fault. Removed page 1 (first in, first out)"
		}`))

		b, err = json.Marshal(r.Steps[0])
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(ContainSubstring(`"replaced":null`))
	})

	It("should round-trip a result through JSON", func() {
		r, _ := replacement.SimulateOptimal(textbook, 3)

		b, err := json.Marshal(r)
		Expect(err).ToNot(HaveOccurred())

		decoded := &replacement.Result{}
		Expect(json.Unmarshal(b, decoded)).To(Succeed())
		Expect(decoded).To(Equal(r))
	})
})

var _ = Describe("Status", func() {
	It("should print hits and faults", func() {
		Expect(replacement.Hit.String()).To(Equal("hit"))
		Expect(replacement.Fault.String()).To(Equal("fault"))
	})

	It("should name unknown statuses by number", func() {
		Expect(replacement.Status(7).String()).To(Equal("status(7)"))
	})

	It("should refuse to encode unknown statuses", func() {
		_, err := json.Marshal(replacement.Step{Status: replacement.Status(7)})

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Policy", func() {
	DescribeTable("parsing",
		func(name string, want replacement.Policy) {
			p, err := replacement.ParsePolicy(name)

			Expect(err).ToNot(HaveOccurred())
			Expect(p).To(Equal(want))
		},
		Entry("fifo", "fifo", replacement.FIFO),
		Entry("upper case", "LRU", replacement.LRU),
		Entry("optimal", " Optimal ", replacement.Optimal),
		Entry("opt alias", "opt", replacement.Optimal),
		Entry("belady alias", "belady", replacement.Optimal),
	)

	It("should fail on an unknown name", func() {
		_, err := replacement.ParsePolicy("clock")

		Expect(err).To(MatchError(replacement.ErrUnknownPolicy))
	})

	It("should print names", func() {
		Expect(replacement.LRU.String()).To(Equal("lru"))
		Expect(replacement.Optimal.DisplayName()).To(Equal("Optimal"))
	})
})
