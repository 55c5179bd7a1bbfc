// Package replacement simulates the classic page-replacement policies (FIFO,
// LRU and Optimal) over a reference string and records every decision.
//
// A simulation is a pure function of its inputs. Each call owns its frames and
// bookkeeping, so simulations may run concurrently without synchronization.
package replacement

import (
	"errors"
	"fmt"
)

// ErrInvalidFrameCount is returned when fewer than one frame is requested.
var ErrInvalidFrameCount = errors.New("frame count must be at least 1")

// ErrUnknownPolicy is returned for a policy that is not FIFO, LRU or Optimal.
var ErrUnknownPolicy = errors.New("unknown replacement policy")

// Simulate runs policy over references with frameCount frames and returns
// the full trace.
func Simulate(policy Policy, references []int, frameCount int) (*Result, error) {
	if frameCount < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFrameCount, frameCount)
	}

	if !policy.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(policy))
	}

	refs := make([]int, len(references))
	copy(refs, references)

	// No more pages than references can ever be resident.
	capacity := min(frameCount, len(refs))

	s := &simulator{
		policy:     policy,
		frameCount: frameCount,
		finder:     newVictimFinder(policy, refs),
		frames:     make([]int, 0, capacity),
		resident:   make(map[int]bool, capacity),
	}

	steps := make([]Step, 0, len(refs))
	for idx, page := range refs {
		steps = append(steps, s.process(idx, page))
	}

	return &Result{
		Policy:     policy,
		FrameCount: frameCount,
		References: refs,
		Steps:      steps,
		Faults:     s.faults,
		Hits:       s.hits,
	}, nil
}

// SimulateFIFO simulates first-in, first-out replacement.
func SimulateFIFO(references []int, frameCount int) (*Result, error) {
	return Simulate(FIFO, references, frameCount)
}

// SimulateLRU simulates least-recently-used replacement.
func SimulateLRU(references []int, frameCount int) (*Result, error) {
	return Simulate(LRU, references, frameCount)
}

// SimulateOptimal simulates Bélády's optimal replacement.
func SimulateOptimal(references []int, frameCount int) (*Result, error) {
	return Simulate(Optimal, references, frameCount)
}

type simulator struct {
	policy     Policy
	frameCount int
	finder     victimFinder

	frames   []int
	resident map[int]bool

	faults int
	hits   int
}

func (s *simulator) process(idx, page int) Step {
	step := Step{
		Step: idx + 1,
		Page: page,
	}

	switch {
	case s.resident[page]:
		s.hits++
		s.finder.Visit(page, idx)

		step.Status = Hit
		step.Explanation = fmt.Sprintf("Page %d is already in memory", page)
	case len(s.frames) < s.frameCount:
		s.faults++
		s.frames = append(s.frames, page)
		s.resident[page] = true
		s.finder.Load(page, idx)

		step.Status = Fault
		step.Explanation = fmt.Sprintf("Page %d loaded into empty frame", page)
	default:
		s.faults++
		victim := s.replace(idx, page)

		step.Status = Fault
		step.Replaced = &victim
		step.Explanation = fmt.Sprintf(
			"Page %d caused a fault. Removed page %d (%s)",
			page, victim, s.finder.Rationale(victim, idx))
		s.finder.Evict(victim)
		s.finder.Load(page, idx)
	}

	step.Frames = s.snapshot()
	step.Faults = s.faults
	step.Hits = s.hits

	return step
}

// replace puts page into the victim's slot and returns the victim. The
// finder is left to the caller so that the rationale can still see the
// victim's bookkeeping.
func (s *simulator) replace(idx, page int) int {
	slot := s.finder.FindVictim(s.frames, idx)
	if slot < 0 || slot >= len(s.frames) {
		panic(fmt.Sprintf("%s chose invalid frame slot %d", s.policy, slot))
	}

	victim := s.frames[slot]
	s.frames[slot] = page

	delete(s.resident, victim)
	s.resident[page] = true

	return victim
}

func (s *simulator) snapshot() []int {
	frames := make([]int, len(s.frames))
	copy(frames, s.frames)

	return frames
}
