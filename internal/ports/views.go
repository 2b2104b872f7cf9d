package ports

import (
	"context"

	"github.com/jsamuelsen11/riverplay/internal/domain"
)

// SourceDocument is the controller's view of the editable buffer.
type SourceDocument interface {
	// Snapshot returns the current text and version.
	Snapshot() domain.Document

	// Subscribe registers fn for content-change notifications and returns a
	// function that removes the subscription.
	Subscribe(fn func(domain.ChangeEvent)) (unsubscribe func())
}

// OutputSink receives the normalized text. Implemented by the derived output
// document.
type OutputSink interface {
	// ReplaceAll replaces the entire content with text.
	ReplaceAll(text string)
}

// GraphSink receives graph descriptors. Implemented by the graph view.
type GraphSink interface {
	// Render replaces the displayed diagram. Rendering the descriptor that
	// is already displayed is a no-op. A descriptor the surface cannot draw
	// returns an error wrapping domain.ErrRender after the surface fell back
	// to its configured fallback diagram.
	Render(ctx context.Context, descriptor domain.GraphDescriptor) error

	// Clear displays the explicit empty diagram.
	Clear(ctx context.Context)
}

// Diagnostics is the channel problems are reported on.
type Diagnostics interface {
	// Report records d. Implementations must not block the caller.
	Report(ctx context.Context, d domain.Diagnostic)
}
