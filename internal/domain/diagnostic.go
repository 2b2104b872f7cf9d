package domain

import "time"

// DiagnosticKind classifies a reported pipeline problem.
type DiagnosticKind string

const (
	KindInvalidInput      DiagnosticKind = "invalid_input"
	KindCollaboratorFault DiagnosticKind = "collaborator_fault"
	KindRenderFault       DiagnosticKind = "render_fault"
)

// IsValid returns true if the kind is one of the defined constants.
func (k DiagnosticKind) IsValid() bool {
	switch k {
	case KindInvalidInput, KindCollaboratorFault, KindRenderFault:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (k DiagnosticKind) String() string {
	return string(k)
}

// Diagnostic is one entry on the diagnostics channel. SourceVersion is the
// source document version the problem was observed for.
type Diagnostic struct {
	Kind          DiagnosticKind
	Message       string
	SourceVersion uint64
	At            time.Time
}
