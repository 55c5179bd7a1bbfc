package refstring

import "math/rand/v2"

// Generate returns length pages drawn uniformly from [0, maxPage]. The same
// seed always yields the same sequence.
func Generate(length, maxPage int, seed uint64) []int {
	if length <= 0 {
		return []int{}
	}

	if maxPage < 0 {
		maxPage = 0
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	refs := make([]int, length)
	for i := range refs {
		refs[i] = rng.IntN(maxPage + 1)
	}

	return refs
}

// GenerateWithLocality returns a reference string with a moving working set.
// Most references fall inside a window of window pages; the window drifts
// forward now and then and occasionally a reference jumps anywhere in
// [0, maxPage].
func GenerateWithLocality(length, maxPage, window int, seed uint64) []int {
	if length <= 0 {
		return []int{}
	}

	if maxPage < 0 {
		maxPage = 0
	}

	if window < 1 {
		window = 1
	}

	if window > maxPage+1 {
		window = maxPage + 1
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	base := 0
	refs := make([]int, length)
	for i := range refs {
		switch r := rng.IntN(10); {
		case r == 0:
			refs[i] = rng.IntN(maxPage + 1)
		case r == 1:
			base = (base + 1) % (maxPage + 1)
			fallthrough
		default:
			refs[i] = (base + rng.IntN(window)) % (maxPage + 1)
		}
	}

	return refs
}
