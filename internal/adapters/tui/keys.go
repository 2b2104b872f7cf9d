package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the playground bindings. Editing keys apply while the input
// panel is focused; the graph keys apply while the graph panel is focused.
type keyMap struct {
	Quit      key.Binding
	Focus     key.Binding
	Undo      key.Binding
	Redo      key.Binding
	SelectAll key.Binding
	Log       key.Binding

	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ToggleZoom key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		Undo:      key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:      key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
		SelectAll: key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select all")),
		Log:       key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "diagnostics")),

		ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		ToggleZoom: key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "toggle zoom")),
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		Left:       key.NewBinding(key.WithKeys("left", "h")),
		Right:      key.NewBinding(key.WithKeys("right", "l")),
	}
}

// help renders the bindings relevant to the focused panel.
func (k keyMap) help(f focus) []key.Binding {
	switch f {
	case focusGraph:
		return []key.Binding{k.Focus, k.ToggleZoom, k.ZoomIn, k.ZoomOut, k.Log, k.Quit}
	case focusOutput:
		return []key.Binding{k.Focus, k.Log, k.Quit}
	default:
		return []key.Binding{k.Focus, k.Undo, k.Redo, k.SelectAll, k.Log, k.Quit}
	}
}
