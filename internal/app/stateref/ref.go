// Package stateref holds the handle through which the process-wide pipeline
// state is shared. The entry point creates the single Ref; the sync
// controller is the only writer, display surfaces read snapshots.
package stateref

import (
	"sync"

	"github.com/jsamuelsen11/riverplay/internal/domain"
)

// Ref provides guarded access to a value shared between the goroutine that
// owns it and concurrent readers. Get returns a copy; Update mutates in place
// under the write lock.
type Ref[T any] struct {
	mu  sync.RWMutex
	val T
}

// New creates a Ref initialized with val.
func New[T any](val T) *Ref[T] {
	return &Ref[T]{val: val}
}

// Get returns a copy of the current value under a read lock.
func (r *Ref[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.val
}

// Update applies fn to the value under the write lock. Modifications are
// visible to subsequent Get and Update calls.
func (r *Ref[T]) Update(fn func(*T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.val)
}

// Pipeline is the handle type for the session's pipeline state.
type Pipeline = Ref[domain.PipelineState]

// NewPipeline creates the session's pipeline state handle.
func NewPipeline() *Pipeline {
	return New(domain.NewPipelineState())
}
