// Package analysis derives aggregate views from page-replacement runs, such
// as side-by-side policy comparisons and Bélády's anomaly detection.
package analysis

import (
	"sync"

	"github.com/sarchlab/pagesim/replacement"
)

// Summary is the aggregate outcome of one policy over a reference string.
type Summary struct {
	Policy    replacement.Policy `json:"policy"`
	Faults    int                `json:"faults"`
	Hits      int                `json:"hits"`
	Evictions int                `json:"evictions"`
	FaultRate float64            `json:"fault_rate"`
	HitRate   float64            `json:"hit_rate"`
}

// Summarize extracts the aggregate counts of a run.
func Summarize(r *replacement.Result) Summary {
	return Summary{
		Policy:    r.Policy,
		Faults:    r.Faults,
		Hits:      r.Hits,
		Evictions: r.Evictions(),
		FaultRate: r.FaultRate(),
		HitRate:   r.HitRate(),
	}
}

// RunAll simulates every policy over the same input. The policies run in
// parallel, each on its own state. Results follow replacement.Policies order.
func RunAll(refs []int, frameCount int) ([]*replacement.Result, error) {
	results := make([]*replacement.Result, len(replacement.Policies))
	errs := make([]error, len(replacement.Policies))

	var wg sync.WaitGroup
	for i, p := range replacement.Policies {
		wg.Add(1)
		go func(i int, p replacement.Policy) {
			defer wg.Done()
			results[i], errs[i] = replacement.Simulate(p, refs, frameCount)
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// Compare returns the summary of every policy for the same input.
func Compare(refs []int, frameCount int) ([]Summary, error) {
	results, err := RunAll(refs, frameCount)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, len(results))
	for i, r := range results {
		summaries[i] = Summarize(r)
	}

	return summaries, nil
}

// Best returns the summaries with the fewest faults. Ties keep every winner.
func Best(summaries []Summary) []Summary {
	var best []Summary
	for _, s := range summaries {
		switch {
		case len(best) == 0 || s.Faults < best[0].Faults:
			best = []Summary{s}
		case s.Faults == best[0].Faults:
			best = append(best, s)
		}
	}

	return best
}
