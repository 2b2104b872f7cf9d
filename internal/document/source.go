// Package document provides the text buffers of the playground: the editable
// source document the user types into and the read-only output document the
// sync controller replaces wholesale.
package document

import (
	"fmt"
	"sync"

	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/ports"
)

// Compile-time interface check.
var _ ports.SourceDocument = (*Source)(nil)

// historyLimit bounds the undo stack.
const historyLimit = 500

// change is one applied edit together with the text it removed, so it can be
// inverted for undo and reapplied for redo.
type change struct {
	edit    domain.Edit
	removed string
}

// invert returns the edit that restores the text before c was applied.
func (c change) invert() domain.Edit {
	return domain.Edit{
		From:   c.edit.From,
		To:     c.edit.From + len(c.edit.Insert),
		Insert: c.removed,
	}
}

// Source is the editable buffer. Edits are the only mutation path; every
// edit that changes the text bumps the version and emits exactly one
// domain.ChangeEvent. Selection changes never notify.
//
// Source is safe for concurrent use. Subscribers run on the goroutine that
// made the edit, after the lock is released.
type Source struct {
	mu        sync.Mutex
	doc       domain.Document
	selection domain.Selection
	undo      []change
	redo      []change

	subMu  sync.RWMutex
	subs   map[int]func(domain.ChangeEvent)
	order  []int
	nextID int
}

// NewSource creates a source document holding seed at version 1 with the
// cursor at the end of the text.
func NewSource(seed string) *Source {
	return &Source{
		doc:       domain.Document{Text: seed, Version: 1},
		selection: domain.Selection{Anchor: len(seed), Head: len(seed)},
		subs:      make(map[int]func(domain.ChangeEvent)),
	}
}

// Snapshot returns the current text and version.
func (s *Source) Snapshot() domain.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Subscribe registers fn for content-change notifications. Subscribers are
// called in registration order. The returned function removes the
// subscription and is safe to call more than once.
func (s *Source) Subscribe(fn func(domain.ChangeEvent)) func() {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if _, ok := s.subs[id]; !ok {
			return
		}
		delete(s.subs, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Apply replaces the range [e.From, e.To) with e.Insert. It returns
// domain.ErrInvalidRange when the range is outside the text. A no-op edit
// returns nil without notifying.
func (s *Source) Apply(e domain.Edit) error {
	s.mu.Lock()
	ev, changed, err := s.applyLocked(e)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if changed {
		s.undo = append(s.undo, change{edit: e, removed: ev.removed})
		if len(s.undo) > historyLimit {
			s.undo = s.undo[len(s.undo)-historyLimit:]
		}
		s.redo = nil
	}
	s.mu.Unlock()

	if changed {
		s.notify(ev.event)
	}
	return nil
}

// Insert inserts text at pos.
func (s *Source) Insert(pos int, text string) error {
	return s.Apply(domain.Edit{From: pos, To: pos, Insert: text})
}

// Delete removes the range [from, to).
func (s *Source) Delete(from, to int) error {
	return s.Apply(domain.Edit{From: from, To: to})
}

// ReplaceAll sets the whole text, recording it as the single minimal edit
// that turns the current text into text. Editor widgets that only expose
// their full value use it to report changes.
func (s *Source) ReplaceAll(text string) {
	s.mu.Lock()
	current := s.doc.Text
	s.mu.Unlock()

	// The range is computed from a snapshot; Apply re-validates it.
	if err := s.Apply(minimalEdit(current, text)); err != nil {
		s.mu.Lock()
		whole := domain.Edit{From: 0, To: len(s.doc.Text), Insert: text}
		s.mu.Unlock()
		_ = s.Apply(whole)
	}
}

// Undo reverts the most recent edit. It returns false if there is nothing to
// undo.
func (s *Source) Undo() bool {
	s.mu.Lock()
	if len(s.undo) == 0 {
		s.mu.Unlock()
		return false
	}
	last := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	ev, _, err := s.applyLocked(last.invert())
	if err != nil {
		s.mu.Unlock()
		return false
	}
	s.redo = append(s.redo, last)
	s.mu.Unlock()

	s.notify(ev.event)
	return true
}

// Redo reapplies the most recently undone edit. It returns false if there is
// nothing to redo.
func (s *Source) Redo() bool {
	s.mu.Lock()
	if len(s.redo) == 0 {
		s.mu.Unlock()
		return false
	}
	last := s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]

	ev, _, err := s.applyLocked(last.edit)
	if err != nil {
		s.mu.Unlock()
		return false
	}
	s.undo = append(s.undo, last)
	s.mu.Unlock()

	s.notify(ev.event)
	return true
}

// CanUndo reports whether Undo would change the text.
func (s *Source) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo) > 0
}

// CanRedo reports whether Redo would change the text.
func (s *Source) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

// Selection returns the current selection.
func (s *Source) Selection() domain.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Select moves the selection. It never emits a change event.
func (s *Source) Select(anchor, head int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.doc.Text)
	if anchor < 0 || anchor > n || head < 0 || head > n {
		return fmt.Errorf("select [%d, %d] in text of length %d: %w", anchor, head, n, domain.ErrInvalidRange)
	}
	s.selection = domain.Selection{Anchor: anchor, Head: head}
	return nil
}

// SelectAll selects the whole text.
func (s *Source) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = domain.Selection{Anchor: 0, Head: len(s.doc.Text)}
}

// ReplaceSelection replaces the selected range with text and leaves the
// cursor after the inserted text.
func (s *Source) ReplaceSelection(text string) error {
	from, to := s.Selection().Range()
	return s.Apply(domain.Edit{From: from, To: to, Insert: text})
}

// applied is the result of applyLocked.
type applied struct {
	event   domain.ChangeEvent
	removed string
}

// applyLocked applies e to the document. The caller must hold s.mu.
func (s *Source) applyLocked(e domain.Edit) (applied, bool, error) {
	n := len(s.doc.Text)
	if e.From < 0 || e.To < e.From || e.To > n {
		return applied{}, false, fmt.Errorf("edit [%d, %d) in text of length %d: %w", e.From, e.To, n, domain.ErrInvalidRange)
	}
	if e.IsNoop() {
		return applied{}, false, nil
	}

	removed := s.doc.Text[e.From:e.To]
	if removed == e.Insert {
		return applied{}, false, nil
	}

	text := s.doc.Text[:e.From] + e.Insert + s.doc.Text[e.To:]
	s.doc = domain.Document{Text: text, Version: s.doc.Version + 1}

	cursor := e.From + len(e.Insert)
	s.selection = domain.Selection{Anchor: cursor, Head: cursor}

	return applied{
		event: domain.ChangeEvent{
			Version:  s.doc.Version,
			From:     e.From,
			To:       e.To,
			Inserted: e.Insert,
			Length:   len(text),
		},
		removed: removed,
	}, true, nil
}

// notify delivers ev to all subscribers in registration order.
func (s *Source) notify(ev domain.ChangeEvent) {
	s.subMu.RLock()
	fns := make([]func(domain.ChangeEvent), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.subs[id])
	}
	s.subMu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}

// minimalEdit returns the single edit turning from into to, trimming the
// common prefix and suffix.
func minimalEdit(from, to string) domain.Edit {
	prefix := 0
	for prefix < len(from) && prefix < len(to) && from[prefix] == to[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(from)-prefix && suffix < len(to)-prefix &&
		from[len(from)-1-suffix] == to[len(to)-1-suffix] {
		suffix++
	}

	return domain.Edit{
		From:   prefix,
		To:     len(from) - suffix,
		Insert: to[prefix : len(to)-suffix],
	}
}
