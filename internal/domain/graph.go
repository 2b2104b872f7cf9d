package domain

import "strings"

// GraphDescriptor is a graph in the DOT description language. The pipeline
// treats it as opaque; only the graph surface parses it.
type GraphDescriptor string

// EmptyGraph is the explicit empty diagram.
const EmptyGraph GraphDescriptor = "digraph {\n}\n"

// IsEmpty reports whether the descriptor is blank or the explicit empty
// diagram.
func (g GraphDescriptor) IsEmpty() bool {
	return strings.TrimSpace(string(g)) == "" || g == EmptyGraph
}

// String implements fmt.Stringer.
func (g GraphDescriptor) String() string {
	return string(g)
}
