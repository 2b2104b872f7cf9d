package domain

// ErrorPolicy selects what the sync controller does with derived views when
// the engine rejects the source text.
type ErrorPolicy string

const (
	// PolicyPreserveOutput leaves the output document and the graph at
	// their last good state and reports the diagnostic.
	PolicyPreserveOutput ErrorPolicy = "preserve-output"

	// PolicyClearGraphAndReport leaves the output document untouched,
	// blanks the graph, and reports the diagnostic.
	PolicyClearGraphAndReport ErrorPolicy = "clear-graph-and-report"
)

// IsValid returns true if the policy is one of the defined constants.
func (p ErrorPolicy) IsValid() bool {
	switch p {
	case PolicyPreserveOutput, PolicyClearGraphAndReport:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (p ErrorPolicy) String() string {
	return string(p)
}
