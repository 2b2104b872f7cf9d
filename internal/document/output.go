package document

import (
	"sync"

	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/ports"
)

// Compile-time interface check.
var _ ports.OutputSink = (*Output)(nil)

// Output is the derived, read-only output document. ReplaceAll is its only
// mutator and is called by the sync controller alone. Subscribers are display
// surfaces; none of them feeds back into the pipeline.
type Output struct {
	mu  sync.RWMutex
	doc domain.Document

	subMu sync.RWMutex
	subs  []func(domain.Document)
}

// NewOutput creates an empty output document at version 0.
func NewOutput() *Output {
	return &Output{}
}

// ReplaceAll replaces the entire content with text. No diff is computed.
func (o *Output) ReplaceAll(text string) {
	o.mu.Lock()
	o.doc = domain.Document{Text: text, Version: o.doc.Version + 1}
	doc := o.doc
	o.mu.Unlock()

	o.subMu.RLock()
	fns := make([]func(domain.Document), len(o.subs))
	copy(fns, o.subs)
	o.subMu.RUnlock()

	for _, fn := range fns {
		fn(doc)
	}
}

// Snapshot returns the current content and version.
func (o *Output) Snapshot() domain.Document {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.doc
}

// Subscribe registers fn to be called after every replacement.
func (o *Output) Subscribe(fn func(domain.Document)) {
	o.subMu.Lock()
	defer o.subMu.Unlock()
	o.subs = append(o.subs, fn)
}
