// Package graphview is the graph rendering surface. It parses DOT
// descriptors with gographviz, lays the graph out as an indented tree of
// text lines and exposes a window onto it through a pan/zoom viewport.
//
// The viewport belongs to the user: Render and Clear never move it.
package graphview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/awalterschulze/gographviz"

	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/platform/config"
	"github.com/jsamuelsen11/riverplay/internal/ports"
)

// Compile-time interface check.
var _ ports.GraphSink = (*View)(nil)

// Fallback selects what the view shows after a descriptor fails to parse.
type Fallback string

const (
	// FallbackLastGood keeps showing the last diagram that rendered.
	FallbackLastGood Fallback = "last-good"
	// FallbackEmpty shows the empty diagram.
	FallbackEmpty Fallback = "empty"
)

// Zoom bounds.
const (
	MinZoom = 1
	MaxZoom = 4
)

// Viewport is the user's pan and zoom position.
type Viewport struct {
	OffsetX int
	OffsetY int
	Zoom    int
}

// View holds the displayed diagram and the viewport. Safe for concurrent use.
type View struct {
	mu          sync.Mutex
	current     domain.GraphDescriptor
	lastGood    domain.GraphDescriptor
	graph       *gographviz.Graph
	lines       []string
	viewport    Viewport
	zoomEnabled bool
	fallback    Fallback
	renders     int
	subs        map[int]func()
	nextSub     int
	logger      *slog.Logger
}

// New creates a View showing the empty diagram.
func New(cfg *config.GraphConfig, logger *slog.Logger) *View {
	zoom := min(max(cfg.Zoom, MinZoom), MaxZoom)
	v := &View{
		current:     domain.EmptyGraph,
		viewport:    Viewport{Zoom: zoom},
		zoomEnabled: cfg.ZoomEnabled,
		fallback:    Fallback(cfg.Fallback),
		subs:        make(map[int]func()),
		logger:      logger,
	}
	v.lines = layout(nil, zoom)
	return v
}

// Render replaces the displayed diagram with d. Rendering the descriptor
// already on display does nothing. A descriptor that does not parse leaves
// the view on its fallback diagram and returns an error wrapping
// [domain.ErrRender].
func (v *View) Render(ctx context.Context, d domain.GraphDescriptor) error {
	v.mu.Lock()
	if d == v.current {
		v.mu.Unlock()
		return nil
	}

	g, err := parse(d)
	if err != nil {
		target := domain.EmptyGraph
		if v.fallback == FallbackLastGood && v.lastGood != "" {
			target = v.lastGood
		}
		v.show(target)
		v.mu.Unlock()

		v.logger.WarnContext(ctx, "graph descriptor rejected",
			slog.String("fallback", string(v.fallback)),
			slog.String("error", err.Error()),
		)
		v.notify()
		return fmt.Errorf("parsing graph descriptor: %w: %w", domain.ErrRender, err)
	}

	v.current = d
	v.lastGood = d
	v.graph = g
	v.lines = layout(g, v.viewport.Zoom)
	v.renders++
	v.mu.Unlock()

	v.notify()
	return nil
}

// Clear shows the empty diagram. The last good diagram is kept as the
// fallback for later parse failures.
func (v *View) Clear(_ context.Context) {
	v.mu.Lock()
	if v.current == domain.EmptyGraph {
		v.mu.Unlock()
		return
	}
	v.show(domain.EmptyGraph)
	v.mu.Unlock()

	v.notify()
}

// show displays a descriptor that is known to parse. Caller holds mu.
func (v *View) show(d domain.GraphDescriptor) {
	if d == v.current {
		return
	}
	g, err := parse(d)
	if err != nil {
		g = nil
		d = domain.EmptyGraph
	}
	v.current = d
	v.graph = g
	v.lines = layout(g, v.viewport.Zoom)
	v.renders++
}

// Descriptor returns the descriptor on display.
func (v *View) Descriptor() domain.GraphDescriptor {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Renders returns how many times the displayed diagram actually changed.
func (v *View) Renders() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renders
}

// Viewport returns the current pan and zoom position.
func (v *View) Viewport() Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewport
}

// ZoomEnabled reports whether interactive zoom is on.
func (v *View) ZoomEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoomEnabled
}

// SetZoomEnabled turns interactive zoom on or off. The current zoom level is
// kept either way.
func (v *View) SetZoomEnabled(enabled bool) {
	v.mu.Lock()
	v.zoomEnabled = enabled
	v.mu.Unlock()
	v.notify()
}

// Scroll pans the viewport by dx columns and dy rows. Offsets never go
// negative.
func (v *View) Scroll(dx, dy int) {
	v.mu.Lock()
	v.viewport.OffsetX = max(v.viewport.OffsetX+dx, 0)
	v.viewport.OffsetY = max(v.viewport.OffsetY+dy, 0)
	v.mu.Unlock()
	v.notify()
}

// ZoomIn increases the zoom level by one step. It reports false when zoom is
// disabled or already at MaxZoom.
func (v *View) ZoomIn() bool {
	return v.zoomBy(1)
}

// ZoomOut decreases the zoom level by one step. It reports false when zoom
// is disabled or already at MinZoom.
func (v *View) ZoomOut() bool {
	return v.zoomBy(-1)
}

func (v *View) zoomBy(step int) bool {
	v.mu.Lock()
	z := v.viewport.Zoom + step
	if !v.zoomEnabled || z < MinZoom || z > MaxZoom {
		v.mu.Unlock()
		return false
	}
	v.viewport.Zoom = z
	v.lines = layout(v.graph, z)
	v.mu.Unlock()

	v.notify()
	return true
}

// Subscribe registers fn to be called whenever what the view displays
// changes, and returns a function that removes it.
func (v *View) Subscribe(fn func()) func() {
	v.mu.Lock()
	id := v.nextSub
	v.nextSub++
	v.subs[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}

func (v *View) notify() {
	v.mu.Lock()
	subs := make([]func(), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

func parse(d domain.GraphDescriptor) (*gographviz.Graph, error) {
	if d.IsEmpty() {
		return nil, nil
	}
	return gographviz.Read([]byte(d))
}
