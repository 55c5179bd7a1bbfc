package replacement

import "math"

// never marks a page that does not occur again.
const never = math.MaxInt

// optimalVictimFinder evicts the resident page whose next use lies farthest
// in the future (Bélády's algorithm).
//
// Instead of scanning the rest of the reference string on every eviction, the
// next occurrence of every position is computed once with a backward pass.
// The next use of a resident page is the next occurrence after its latest
// access, which is always later than the current reference because the page
// was not referenced in between.
type optimalVictimFinder struct {
	nextOccurrence []int
	nextUse        map[int]int
}

func newOptimalVictimFinder(refs []int) *optimalVictimFinder {
	f := &optimalVictimFinder{
		nextOccurrence: make([]int, len(refs)),
		nextUse:        make(map[int]int),
	}

	seen := make(map[int]int)
	for i := len(refs) - 1; i >= 0; i-- {
		next, ok := seen[refs[i]]
		if !ok {
			next = never
		}

		f.nextOccurrence[i] = next
		seen[refs[i]] = i
	}

	return f
}

func (f *optimalVictimFinder) Load(page, idx int) {
	f.nextUse[page] = f.nextOccurrence[idx]
}

func (f *optimalVictimFinder) Visit(page, idx int) {
	f.nextUse[page] = f.nextOccurrence[idx]
}

// FindVictim picks the largest next use. Ties, which only happen between
// pages that never recur, go to the first slot.
func (f *optimalVictimFinder) FindVictim(frames []int, _ int) int {
	victim := 0
	for i, p := range frames {
		if f.nextUse[p] > f.nextUse[frames[victim]] {
			victim = i
		}
	}

	return victim
}

func (f *optimalVictimFinder) Rationale(victim, _ int) string {
	if f.nextUse[victim] == never {
		return "not used again"
	}

	return "next used farthest in the future"
}

func (f *optimalVictimFinder) Evict(page int) {
	delete(f.nextUse, page)
}
