package replacement

import "fmt"

// Status tells whether a reference hit or faulted.
type Status int

// Step statuses.
const (
	Hit Status = iota
	Fault
)

func (s Status) String() string {
	switch s {
	case Hit:
		return "hit"
	case Fault:
		return "fault"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText encodes the status as "hit" or "fault".
func (s Status) MarshalText() ([]byte, error) {
	if s != Hit && s != Fault {
		return nil, fmt.Errorf("unknown status %d", int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText decodes "hit" or "fault".
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "hit":
		*s = Hit
	case "fault":
		*s = Fault
	default:
		return fmt.Errorf("unknown status %q", text)
	}

	return nil
}

// A Step records the outcome of processing one reference.
type Step struct {
	// Step is the 1-based position of the reference.
	Step int `json:"step"`

	Page int `json:"page"`

	// Frames is the frame content after this step, in slot order. Each step
	// owns its own copy.
	Frames []int `json:"frames"`

	Status Status `json:"status"`

	// Replaced is the evicted page, or nil if no page was evicted.
	Replaced *int `json:"replaced"`

	Faults      int    `json:"faults"`
	Hits        int    `json:"hits"`
	Explanation string `json:"explanation"`
}

// IsHit returns true if the referenced page was already resident.
func (s Step) IsHit() bool {
	return s.Status == Hit
}

// Victim returns the evicted page and whether an eviction happened.
func (s Step) Victim() (int, bool) {
	if s.Replaced == nil {
		return 0, false
	}

	return *s.Replaced, true
}

// A Result is the complete trace of one simulation run.
type Result struct {
	Policy     Policy `json:"policy"`
	FrameCount int    `json:"frame_count"`
	References []int  `json:"references"`
	Steps      []Step `json:"steps"`
	Faults     int    `json:"faults"`
	Hits       int    `json:"hits"`
}

// FaultRate returns faults divided by the number of references.
func (r *Result) FaultRate() float64 {
	if len(r.Steps) == 0 {
		return 0
	}

	return float64(r.Faults) / float64(len(r.Steps))
}

// HitRate returns hits divided by the number of references.
func (r *Result) HitRate() float64 {
	if len(r.Steps) == 0 {
		return 0
	}

	return float64(r.Hits) / float64(len(r.Steps))
}

// Evictions counts the steps that replaced a resident page.
func (r *Result) Evictions() int {
	n := 0
	for _, s := range r.Steps {
		if s.Replaced != nil {
			n++
		}
	}

	return n
}
