package replacement

// fifoVictimFinder evicts the page that has been resident the longest.
// Hits do not change the order.
type fifoVictimFinder struct {
	order []int
}

func newFIFOVictimFinder() *fifoVictimFinder {
	return &fifoVictimFinder{}
}

func (f *fifoVictimFinder) Load(page, _ int) {
	f.order = append(f.order, page)
}

func (f *fifoVictimFinder) Visit(_, _ int) {
	// Nothing to do for FIFO
}

func (f *fifoVictimFinder) FindVictim(frames []int, _ int) int {
	return slotOf(frames, f.order[0])
}

func (f *fifoVictimFinder) Rationale(_, _ int) string {
	return "first in, first out"
}

func (f *fifoVictimFinder) Evict(page int) {
	for i, p := range f.order {
		if p == page {
			f.order = append(f.order[:i], f.order[i+1:]...)
			return
		}
	}
}
