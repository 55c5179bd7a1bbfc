package replacement

import (
	"fmt"
	"strings"
)

// A Policy selects which resident page is evicted when memory is full.
type Policy int

// The supported policies.
const (
	FIFO Policy = iota
	LRU
	Optimal
)

// Policies lists every policy in the order comparison views present them.
var Policies = []Policy{FIFO, LRU, Optimal}

func (p Policy) String() string {
	switch p {
	case FIFO:
		return "fifo"
	case LRU:
		return "lru"
	case Optimal:
		return "optimal"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// DisplayName returns the name used in tables and explanations.
func (p Policy) DisplayName() string {
	switch p {
	case FIFO:
		return "FIFO"
	case LRU:
		return "LRU"
	case Optimal:
		return "Optimal"
	default:
		return p.String()
	}
}

// MarshalText encodes the policy as its lower-case name.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}

	return []byte(p.String()), nil
}

// UnmarshalText decodes a policy name accepted by ParsePolicy.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

func (p Policy) valid() bool {
	return p >= FIFO && p <= Optimal
}

// ParsePolicy converts a name such as "lru" or "Optimal" to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fifo":
		return FIFO, nil
	case "lru":
		return LRU, nil
	case "optimal", "opt", "belady":
		return Optimal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
	}
}
