package ports

import (
	"context"

	"github.com/jsamuelsen11/riverplay/internal/domain"
)

// Engine is the raw contract of the external parsing/normalization
// collaborator. Both calls are pure and synchronous.
type Engine interface {
	// Transform returns the normalized form of text, or a string starting
	// with the engine's reserved error marker followed by a diagnostic.
	Transform(text string) string

	// ToGraph returns a DOT document describing the structure of text.
	// The result is only meaningful when Transform accepted the same text.
	ToGraph(text string) string
}

// TransformService is the classified view of the engine used by the sync
// controller. Implemented by the engine adapter.
type TransformService interface {
	// Transform classifies the engine result. A rejected source text is a
	// successful call returning an Invalid result; err is reserved for
	// faults such as an open circuit breaker or a canceled context.
	// Implementations do not recover panics from the engine.
	Transform(ctx context.Context, text string) (domain.TransformResult, error)

	// ToGraphSpec returns the graph descriptor for text. Callers must only
	// invoke it after Transform returned an Ok result for the same text.
	ToGraphSpec(ctx context.Context, text string) (domain.GraphDescriptor, error)
}
