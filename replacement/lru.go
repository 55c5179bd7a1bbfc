package replacement

// lruVictimFinder evicts the resident page whose most recent access is the
// oldest. Loading a page counts as an access.
type lruVictimFinder struct {
	lastUsed map[int]int
}

func newLRUVictimFinder() *lruVictimFinder {
	return &lruVictimFinder{
		lastUsed: make(map[int]int),
	}
}

func (f *lruVictimFinder) Load(page, idx int) {
	f.lastUsed[page] = idx
}

func (f *lruVictimFinder) Visit(page, idx int) {
	f.lastUsed[page] = idx
}

// FindVictim scans the frames in slot order. Only a strictly older access
// replaces the current candidate, so the first slot wins a tie.
func (f *lruVictimFinder) FindVictim(frames []int, _ int) int {
	victim := 0
	for i, p := range frames {
		if f.lastUsed[p] < f.lastUsed[frames[victim]] {
			victim = i
		}
	}

	return victim
}

func (f *lruVictimFinder) Rationale(_, _ int) string {
	return "least recently used"
}

func (f *lruVictimFinder) Evict(page int) {
	delete(f.lastUsed, page)
}
