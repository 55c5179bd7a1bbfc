package replacement

// A victimFinder holds the bookkeeping of one policy for a single run and
// decides which frame slot is emptied when memory is full.
type victimFinder interface {
	// Load is called after page has been placed in a frame at reference idx.
	Load(page, idx int)

	// Visit is called when the reference at idx hits a resident page.
	Visit(page, idx int)

	// FindVictim returns the slot in frames whose page should be evicted.
	FindVictim(frames []int, idx int) int

	// Rationale describes why victim was chosen. It is called before Evict.
	Rationale(victim, idx int) string

	// Evict forgets a page that is leaving memory.
	Evict(page int)
}

func newVictimFinder(policy Policy, refs []int) victimFinder {
	switch policy {
	case FIFO:
		return newFIFOVictimFinder()
	case LRU:
		return newLRUVictimFinder()
	case Optimal:
		return newOptimalVictimFinder(refs)
	default:
		panic("unknown policy " + policy.String())
	}
}

func slotOf(frames []int, page int) int {
	for i, p := range frames {
		if p == page {
			return i
		}
	}

	return -1
}
