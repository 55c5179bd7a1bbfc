package tracing

import (
	"github.com/sarchlab/pagesim/refstring"
	"github.com/sarchlab/pagesim/replacement"
)

// runTableEntry is the flat form of a run.
type runTableEntry struct {
	RunID      string
	Policy     string
	FrameCount int
	RefString  string
	Faults     int
	Hits       int
}

// stepTableEntry is the flat form of one step. Frames uses the same
// comma-separated form as reference strings. Replaced is only meaningful
// when HasReplaced is set.
type stepTableEntry struct {
	RunID       string
	Step        int
	Page        int
	Frames      string
	Status      string
	HasReplaced bool
	Replaced    int
	Faults      int
	Hits        int
	Explanation string
}

func newRunEntry(id string, r *replacement.Result) runTableEntry {
	return runTableEntry{
		RunID:      id,
		Policy:     r.Policy.String(),
		FrameCount: r.FrameCount,
		RefString:  refstring.Format(r.References),
		Faults:     r.Faults,
		Hits:       r.Hits,
	}
}

func newStepEntry(id string, s replacement.Step) stepTableEntry {
	victim, evicted := s.Victim()

	return stepTableEntry{
		RunID:       id,
		Step:        s.Step,
		Page:        s.Page,
		Frames:      refstring.Format(s.Frames),
		Status:      s.Status.String(),
		HasReplaced: evicted,
		Replaced:    victim,
		Faults:      s.Faults,
		Hits:        s.Hits,
		Explanation: s.Explanation,
	}
}

func (e stepTableEntry) toStep() (replacement.Step, error) {
	s := replacement.Step{
		Step:        e.Step,
		Page:        e.Page,
		Frames:      refstring.Parse(e.Frames),
		Faults:      e.Faults,
		Hits:        e.Hits,
		Explanation: e.Explanation,
	}

	err := s.Status.UnmarshalText([]byte(e.Status))
	if err != nil {
		return s, err
	}

	if e.HasReplaced {
		victim := e.Replaced
		s.Replaced = &victim
	}

	return s, nil
}
