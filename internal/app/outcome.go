package app

// Outcome classifies how one sync cycle ended.
type Outcome int

const (
	// OutcomeApplied means the output and graph now show the cycle's text.
	OutcomeApplied Outcome = iota
	// OutcomeInvalid means the engine rejected the text and the error
	// policy was applied.
	OutcomeInvalid
	// OutcomeFault means an engine call panicked or failed; derived views
	// kept their last good content for whatever had not been applied yet.
	OutcomeFault
	// OutcomeRenderFault means the output was updated but the graph view
	// could not draw the descriptor and fell back.
	OutcomeRenderFault
	// OutcomeSuperseded means newer text arrived before the cycle could
	// apply its results, which were discarded.
	OutcomeSuperseded
)

var outcomeNames = [...]string{
	OutcomeApplied:     "applied",
	OutcomeInvalid:     "invalid",
	OutcomeFault:       "fault",
	OutcomeRenderFault: "render_fault",
	OutcomeSuperseded:  "superseded",
}

// String implements fmt.Stringer. The value doubles as the metric label.
func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return "unknown"
	}
	return outcomeNames[o]
}

// Status is the controller's state machine position.
type Status int

const (
	// StatusIdle means no change is being processed.
	StatusIdle Status = iota
	// StatusSyncing means at least one cycle is in flight.
	StatusSyncing
)

// String implements fmt.Stringer.
func (s Status) String() string {
	if s == StatusSyncing {
		return "syncing"
	}
	return "idle"
}
