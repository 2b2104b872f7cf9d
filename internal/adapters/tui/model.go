// Package tui is the terminal front end of the playground. It lays out three
// panels (source input, normalized output, type graph) and a status line.
// Keystrokes in the input panel become edits on the source document; the
// output and graph panels only mirror what the sync controller produced.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen11/riverplay/internal/adapters/diagnostics"
	"github.com/jsamuelsen11/riverplay/internal/adapters/graphview"
	"github.com/jsamuelsen11/riverplay/internal/app"
	"github.com/jsamuelsen11/riverplay/internal/app/stateref"
	"github.com/jsamuelsen11/riverplay/internal/document"
	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/platform/health"
	"github.com/jsamuelsen11/riverplay/internal/platform/logging"
	"github.com/jsamuelsen11/riverplay/internal/ports"
)

const (
	defaultWidth  = 120
	defaultHeight = 30

	// chrome is the border plus horizontal padding of a panel.
	chrome = 4
	// footer is the status line plus the help line.
	footer = 2
)

type focus int

const (
	focusInput focus = iota
	focusOutput
	focusGraph
	focusCount
)

// Deps are the pipeline objects the terminal program edits and displays.
// Controller and Health are optional.
type Deps struct {
	Source      *document.Source
	Output      *document.Output
	Graph       *graphview.View
	Diagnostics *diagnostics.Log
	State       *stateref.Pipeline
	Health      ports.HealthRegistry
	Controller  *app.SyncController
}

// Model is the bubbletea model of the playground.
type Model struct {
	ctx      context.Context
	deps     Deps
	keys     keyMap
	notifier *Notifier
	ping     chan struct{}
	unsub    []func()

	input  textarea.Model
	output viewport.Model
	focus  focus

	// allSelected is set by select-all and cleared by the next key in the
	// input panel. While set, typing replaces the whole source.
	allSelected bool
	showLog     bool

	width     int
	height    int
	unhealthy string
}

// New builds the model and subscribes it to the views it mirrors. Call Close
// when the program has exited.
func New(ctx context.Context, deps Deps) *Model {
	n := NewNotifier()

	input := textarea.New()
	input.Placeholder = "Bits<1>"
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetValue(deps.Source.Snapshot().Text)
	input.Focus()

	m := &Model{
		ctx:      ctx,
		deps:     deps,
		keys:     defaultKeyMap(),
		notifier: n,
		ping:     n.Subscribe(),
		input:    input,
		output:   viewport.New(0, 0),
	}

	deps.Output.Subscribe(func(domain.Document) { n.Broadcast() })
	m.unsub = append(m.unsub, deps.Graph.Subscribe(n.Broadcast))
	if deps.Diagnostics != nil {
		m.unsub = append(m.unsub, deps.Diagnostics.Subscribe(func(domain.Diagnostic) { n.Broadcast() }))
	}

	m.resize(defaultWidth, defaultHeight)
	m.refresh()
	return m
}

// Close drops the model's subscriptions and releases a pending refresh
// command.
func (m *Model) Close() {
	for _, fn := range m.unsub {
		fn()
	}
	m.unsub = nil
	m.notifier.Unsubscribe(m.ping)
}

// Run starts the full-screen program and blocks until the user quits or ctx
// is canceled.
func Run(ctx context.Context, deps Deps, opts ...tea.ProgramOption) error {
	logger := logging.FromContext(ctx)

	m := New(ctx, deps)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("running terminal program: %w", err)
	}

	logger.DebugContext(ctx, "terminal program exited",
		slog.Uint64("source_version", deps.Source.Snapshot().Version),
	)
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitFor(m.ping))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case refreshMsg:
		m.refresh()
		return m, waitFor(m.ping)
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Focus):
		return m.cycleFocus()
	case key.Matches(msg, m.keys.Log):
		m.showLog = !m.showLog
		m.refresh()
		return nil
	}

	switch m.focus {
	case focusOutput:
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return cmd
	case focusGraph:
		m.handleGraphKey(msg)
		return nil
	default:
		return m.handleInputKey(msg)
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	src := m.deps.Source

	if m.allSelected {
		m.allSelected = false
		if text, ok := replacement(msg); ok {
			if err := src.ReplaceSelection(text); err == nil {
				m.input.SetValue(src.Snapshot().Text)
			}
			return nil
		}
	}

	switch {
	case key.Matches(msg, m.keys.Undo):
		if src.Undo() {
			m.input.SetValue(src.Snapshot().Text)
		}
		return nil
	case key.Matches(msg, m.keys.Redo):
		if src.Redo() {
			m.input.SetValue(src.Snapshot().Text)
		}
		return nil
	case key.Matches(msg, m.keys.SelectAll):
		src.SelectAll()
		m.allSelected = src.Snapshot().Len() > 0
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		src.ReplaceAll(after)
	}
	return cmd
}

// replacement returns the text an editing key puts in place of a selection.
// Keys that do not edit report false.
func replacement(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes), true
	case tea.KeySpace:
		return " ", true
	case tea.KeyEnter:
		return "\n", true
	case tea.KeyBackspace, tea.KeyDelete:
		return "", true
	default:
		return "", false
	}
}

func (m *Model) handleGraphKey(msg tea.KeyMsg) {
	g := m.deps.Graph

	switch {
	case key.Matches(msg, m.keys.ToggleZoom):
		g.SetZoomEnabled(!g.ZoomEnabled())
	case key.Matches(msg, m.keys.ZoomIn):
		g.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		g.ZoomOut()
	case key.Matches(msg, m.keys.Up):
		g.Scroll(0, -1)
	case key.Matches(msg, m.keys.Down):
		g.Scroll(0, 1)
	case key.Matches(msg, m.keys.Left):
		g.Scroll(-1, 0)
	case key.Matches(msg, m.keys.Right):
		g.Scroll(1, 0)
	}
}

func (m *Model) cycleFocus() tea.Cmd {
	m.allSelected = false
	m.focus = (m.focus + 1) % focusCount
	if m.focus == focusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

// refresh pulls the latest output text, or the diagnostics history when it
// is shown, and component health.
func (m *Model) refresh() {
	if m.showLog && m.deps.Diagnostics != nil {
		m.output.SetContent(history(m.deps.Diagnostics.Entries()))
	} else {
		m.output.SetContent(m.deps.Output.Snapshot().Text)
	}
	if m.deps.Health != nil {
		m.unhealthy = health.Summary(m.deps.Health.CheckAll(m.ctx))
	}
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height

	w, h := m.bodySize()
	m.input.SetWidth(w)
	m.input.SetHeight(h)
	m.output.Width = w
	m.output.Height = h
}

// bodySize is the inner size of one panel: a third of the screen width, the
// full height minus borders, the panel title and the footer.
func (m *Model) bodySize() (width, height int) {
	width = max(m.width/int(focusCount)-chrome, 8)
	height = max(m.height-footer-3, 3)
	return width, height
}

// View implements tea.Model.
func (m *Model) View() string {
	w, h := m.bodySize()

	panels := lipgloss.JoinHorizontal(lipgloss.Top,
		m.panel(m.inputTitle(), m.input.View(), focusInput),
		m.panel(m.outputTitle(), m.output.View(), focusOutput),
		m.panel(m.graphTitle(), m.deps.Graph.Frame(w, h), focusGraph),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		panels,
		m.statusLine(),
		m.helpLine(),
	)
}

func (m *Model) panel(title, body string, f focus) string {
	style := panelStyle
	if m.focus == f {
		style = focusedPanelStyle
	}
	w, _ := m.bodySize()
	return style.Width(w + 2).Render(titleStyle.Render(title) + "\n" + body)
}

func (m *Model) inputTitle() string {
	if m.allSelected {
		return "Input (all selected)"
	}
	return "Input"
}

func (m *Model) outputTitle() string {
	if m.showLog && m.deps.Diagnostics != nil {
		return "Diagnostics"
	}
	return "Output"
}

func (m *Model) graphTitle() string {
	g := m.deps.Graph
	if !g.ZoomEnabled() {
		return "Graph"
	}
	return fmt.Sprintf("Graph (zoom %d)", g.Viewport().Zoom)
}

func (m *Model) statusLine() string {
	var st domain.PipelineState
	if m.deps.State != nil {
		st = m.deps.State.Get()
	}

	var (
		d  domain.Diagnostic
		ok bool
	)
	if m.deps.Diagnostics != nil {
		d, ok = m.deps.Diagnostics.Latest()
	}

	syncing := m.deps.Controller != nil && m.deps.Controller.Status() == app.StatusSyncing
	return statusLine(st, d, ok, syncing, m.unhealthy)
}

func (m *Model) helpLine() string {
	keys := m.keys
	keys.Undo.SetEnabled(m.deps.Source.CanUndo())
	keys.Redo.SetEnabled(m.deps.Source.CanRedo())

	bindings := keys.help(m.focus)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

// statusLine shows the newest diagnostic when it concerns text newer than the
// last accepted source. Older diagnostics were superseded by a successful
// cycle and are not shown.
func statusLine(st domain.PipelineState, d domain.Diagnostic, hasDiag, syncing bool, unhealthy string) string {
	var b strings.Builder

	switch {
	case hasDiag && (st.LastGoodSource == nil || d.SourceVersion > st.LastGoodSource.Version):
		style := errorStyle
		if d.Kind == domain.KindInvalidInput {
			style = warnStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s: %s", d.Kind, d.Message)))
	case st.LastGoodSource != nil:
		b.WriteString(okStyle.Render(fmt.Sprintf("ok v%d", st.LastGoodSource.Version)))
	default:
		b.WriteString("waiting for first valid expression")
	}

	if syncing {
		b.WriteString(helpStyle.Render(" (syncing)"))
	}
	if unhealthy != "" {
		b.WriteString(errorStyle.Render(" | unhealthy: " + unhealthy))
	}
	return b.String()
}

// history renders diagnostics newest first, one per line.
func history(entries []domain.Diagnostic) string {
	if len(entries) == 0 {
		return "no diagnostics"
	}
	lines := make([]string, 0, len(entries))
	for _, d := range slices.Backward(entries) {
		lines = append(lines, fmt.Sprintf("v%d %s: %s", d.SourceVersion, d.Kind, d.Message))
	}
	return strings.Join(lines, "\n")
}
