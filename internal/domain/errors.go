package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checking.
var (
	// ErrInvalidSource marks source text the engine rejected. It is the
	// expected, frequent outcome of an unfinished edit, not a bug.
	ErrInvalidSource = errors.New("invalid source")

	// ErrCollaboratorFault marks an engine call that panicked or failed
	// unexpectedly.
	ErrCollaboratorFault = errors.New("collaborator fault")

	// ErrRender marks a graph descriptor the graph surface could not draw.
	ErrRender = errors.New("render failed")

	// ErrInvalidRange is returned for edits outside the document bounds.
	ErrInvalidRange = errors.New("invalid range")
)

// FaultError carries a recovered panic from an engine call. Use
// errors.Is(err, ErrCollaboratorFault) for simple checks, or errors.As to
// reach the panic value and stack.
type FaultError struct {
	Operation string
	Value     any
	Stack     []byte
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s: %s panicked: %v", ErrCollaboratorFault.Error(), e.Operation, e.Value)
}

func (e *FaultError) Unwrap() error {
	return ErrCollaboratorFault
}
