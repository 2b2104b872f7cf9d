package graphview

import (
	"strconv"
	"strings"

	"github.com/awalterschulze/gographviz"
)

const emptyLine = "(empty graph)"

// layout draws g as an indented tree. Roots are the nodes without incoming
// edges in declaration order; children follow edge order. Each zoom step
// widens the indentation, and from zoom 3 on node ids are shown next to
// their labels. A node reached a second time is drawn once more with a
// trailing "*" and not expanded again.
func layout(g *gographviz.Graph, zoom int) []string {
	if g == nil {
		return []string{emptyLine}
	}

	var order []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	for _, n := range g.Nodes.Nodes {
		add(n.Name)
	}

	children := make(map[string][]string)
	incoming := make(map[string]bool)
	for _, e := range g.Edges.Edges {
		add(e.Src)
		add(e.Dst)
		children[e.Src] = append(children[e.Src], e.Dst)
		incoming[e.Dst] = true
	}
	if len(order) == 0 {
		return []string{emptyLine}
	}

	var roots []string
	for _, name := range order {
		if !incoming[name] {
			roots = append(roots, name)
		}
	}
	if len(roots) == 0 {
		// Every node sits on a cycle; start from the first declared one.
		roots = order[:1]
	}

	indent := strings.Repeat(" ", 2*zoom)
	drawn := make(map[string]bool)
	var lines []string

	var walk func(name string, depth int)
	walk = func(name string, depth int) {
		line := strings.Repeat(indent, depth) + nodeText(g, name, zoom)
		if drawn[name] {
			lines = append(lines, line+" *")
			return
		}
		drawn[name] = true
		lines = append(lines, line)
		for _, c := range children[name] {
			walk(c, depth+1)
		}
	}
	for _, r := range roots {
		walk(r, 0)
	}
	// Nodes only reachable from a cycle that no root leads into.
	for _, name := range order {
		if !drawn[name] {
			walk(name, 0)
		}
	}
	return lines
}

func nodeText(g *gographviz.Graph, name string, zoom int) string {
	label := unquote(name)
	if n, ok := g.Nodes.Lookup[name]; ok {
		if l, ok := n.Attrs[gographviz.Label]; ok {
			label = unquote(l)
		}
	}
	if zoom >= 3 && label != unquote(name) {
		return label + " (" + unquote(name) + ")"
	}
	return label
}

func unquote(s string) string {
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s
}

// Frame returns the part of the layout visible through the viewport, at most
// width columns by height rows, joined with newlines.
func (v *View) Frame(width, height int) string {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width <= 0 || height <= 0 {
		return ""
	}

	start := min(v.viewport.OffsetY, len(v.lines))
	end := min(start+height, len(v.lines))

	out := make([]string, 0, end-start)
	for _, line := range v.lines[start:end] {
		r := []rune(line)
		from := min(v.viewport.OffsetX, len(r))
		to := min(from+width, len(r))
		out = append(out, string(r[from:to]))
	}
	return strings.Join(out, "\n")
}
