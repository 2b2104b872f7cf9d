// Package diagnostics implements the pipeline's diagnostics channel: a
// bounded in-memory log of problems that the terminal UI's status line reads,
// mirrored to the structured logger.
package diagnostics

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/ports"
)

// Compile-time interface check.
var _ ports.Diagnostics = (*Log)(nil)

// DefaultCapacity is the number of entries kept when New is given zero.
const DefaultCapacity = 64

// Log keeps the most recent diagnostics, oldest first. Report never blocks on
// subscribers beyond their own callback. Safe for concurrent use.
type Log struct {
	mu       sync.Mutex
	entries  []domain.Diagnostic
	capacity int
	subs     map[int]func(domain.Diagnostic)
	nextSub  int
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a Log holding up to capacity entries.
func New(capacity int, logger *slog.Logger) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{
		capacity: capacity,
		subs:     make(map[int]func(domain.Diagnostic)),
		logger:   logger,
		now:      time.Now,
	}
}

// Report records d, stamping At when it is zero, logs it and notifies
// subscribers.
func (l *Log) Report(ctx context.Context, d domain.Diagnostic) {
	l.mu.Lock()
	if d.At.IsZero() {
		d.At = l.now()
	}
	if len(l.entries) == l.capacity {
		l.entries = slices.Delete(l.entries, 0, 1)
	}
	l.entries = append(l.entries, d)
	subs := make([]func(domain.Diagnostic), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	l.mu.Unlock()

	l.log(ctx, d)

	for _, fn := range subs {
		fn(d)
	}
}

func (l *Log) log(ctx context.Context, d domain.Diagnostic) {
	logger := l.logger
	attrs := []any{
		slog.String("kind", d.Kind.String()),
		slog.Uint64("source_version", d.SourceVersion),
		slog.String("message", d.Message),
	}

	switch d.Kind {
	case domain.KindCollaboratorFault:
		logger.ErrorContext(ctx, "collaborator fault", attrs...)
	case domain.KindRenderFault:
		logger.WarnContext(ctx, "graph render fault", attrs...)
	default:
		logger.InfoContext(ctx, "invalid source", attrs...)
	}
}

// Latest returns the newest diagnostic, if any.
func (l *Log) Latest() (domain.Diagnostic, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) == 0 {
		return domain.Diagnostic{}, false
	}
	return l.entries[len(l.entries)-1], true
}

// Entries returns a copy of the retained diagnostics, oldest first.
func (l *Log) Entries() []domain.Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// Subscribe registers fn to be called after every Report and returns a
// function that removes it.
func (l *Log) Subscribe(fn func(domain.Diagnostic)) func() {
	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}
