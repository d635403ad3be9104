package scorer

import (
	"fmt"
	"strings"
)

// Method selects the letter-value heuristic used to rank candidates.
type Method int

const (
	// Cumulative weights letters by total occurrences across the pool.
	Cumulative Method = iota
	// Unique weights letters by how many candidates contain them.
	Unique
	// PerSlot weights letters by occurrences at each position.
	PerSlot
	// Combined multiplies the three scores above.
	Combined
)

// Methods lists every ranking method in declaration order.
func Methods() []Method {
	return []Method{Cumulative, Unique, PerSlot, Combined}
}

func (m Method) String() string {
	switch m {
	case Cumulative:
		return "cumulative"
	case Unique:
		return "unique"
	case PerSlot:
		return "slot"
	case Combined:
		return "combined"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod accepts a method name or its short alias.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cumulative", "cum":
		return Cumulative, nil
	case "unique", "uni":
		return Unique, nil
	case "slot", "per-slot", "slo":
		return PerSlot, nil
	case "combined", "tot":
		return Combined, nil
	default:
		return 0, fmt.Errorf("unknown scoring method %q (want cumulative, unique, slot or combined)", s)
	}
}
