package river

import (
	"strconv"
	"strings"
)

// Dot lowers t to a DOT digraph. Nodes are numbered n0, n1, ... in pre-order
// and carry a label attribute; every parent has an edge to each child in
// declaration order.
func Dot(t *Type) string {
	var nodes, edges strings.Builder
	next := 0

	var walk func(t *Type)
	walk = func(t *Type) {
		id := nodeID(next)
		next++
		nodes.WriteString("\t" + id + " [label=" + strconv.Quote(t.label()) + "];\n")
		for _, c := range t.Children() {
			edges.WriteString("\t" + id + " -> " + nodeID(next) + ";\n")
			walk(c)
		}
	}
	walk(t)

	return "digraph {\n" + nodes.String() + edges.String() + "}\n"
}

func nodeID(n int) string {
	return "n" + strconv.Itoa(n)
}
