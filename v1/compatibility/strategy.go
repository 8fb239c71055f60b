package compatibility

import "fmt"

// Strategy names the compatibility contract a lineage enforces when a new
// revision is proposed.
type Strategy int

const (
	// AutoUpdateDisabled rejects every schema change (the restrictive extreme).
	AutoUpdateDisabled Strategy = iota

	// AlwaysCompatible admits every schema change (the permissive extreme).
	AlwaysCompatible

	// Backward requires consumers using the candidate to read data written
	// with the latest surviving revision.
	Backward

	// Forward requires consumers using the latest surviving revision to read
	// data written with the candidate.
	Forward

	// Full requires both Backward and Forward against the latest surviving
	// revision.
	Full

	// BackwardTransitive is Backward against every surviving revision.
	BackwardTransitive

	// ForwardTransitive is Forward against every surviving revision.
	ForwardTransitive

	// FullTransitive is Full against every surviving revision.
	FullTransitive
)

var strategyNames = map[Strategy]string{
	AutoUpdateDisabled: "AUTO_UPDATE_DISABLED",
	AlwaysCompatible:   "ALWAYS_COMPATIBLE",
	Backward:           "BACKWARD",
	Forward:            "FORWARD",
	Full:               "FULL",
	BackwardTransitive: "BACKWARD_TRANSITIVE",
	ForwardTransitive:  "FORWARD_TRANSITIVE",
	FullTransitive:     "FULL_TRANSITIVE",
}

// String returns the canonical name of the strategy as used in administrative
// request parameters.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STRATEGY(%d)", int(s))
}

// IsTransitive reports whether the strategy requires validation against every
// surviving revision rather than only the latest one.
func (s Strategy) IsTransitive() bool {
	switch s {
	case BackwardTransitive, ForwardTransitive, FullTransitive:
		return true
	default:
		return false
	}
}

// ParseStrategy returns the Strategy named by s, matching the canonical names
// produced by Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	for strat, name := range strategyNames {
		if name == s {
			return strat, nil
		}
	}
	return AutoUpdateDisabled, fmt.Errorf("compatibility: unknown strategy %q", s)
}
