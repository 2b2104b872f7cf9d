package domain

// PipelineState records the last source text the engine accepted and the
// derived views produced from it. It is created once at startup, mutated only
// by the sync controller, and lives for the whole session.
type PipelineState struct {
	LastGoodSource *Document
	LastGoodOutput *Document
	LastGoodGraph  *GraphDescriptor
}

// NewPipelineState returns the state for a fresh session. Nothing is "good"
// until the first successful cycle on the seed expression.
func NewPipelineState() PipelineState {
	return PipelineState{}
}
