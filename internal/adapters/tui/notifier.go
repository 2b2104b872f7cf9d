package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// refreshMsg tells the model that one of the views it mirrors changed.
type refreshMsg struct{}

// Notifier wakes the terminal program when the pipeline touches a view. The
// pipeline may run on any goroutine; the model only ever reads the views from
// its own Update loop after a ping.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
}

// NewNotifier creates a Notifier with no listeners.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[chan struct{}]struct{})}
}

// Subscribe returns a channel that receives a ping after every Broadcast.
// Callers must Unsubscribe when done.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes ch.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	if _, ok := n.listeners[ch]; ok {
		delete(n.listeners, ch)
		close(ch)
	}
	n.mu.Unlock()
}

// Broadcast pings every listener without blocking. A listener that has not
// consumed its previous ping is skipped; one pending ping is enough to
// trigger a full refresh.
func (n *Notifier) Broadcast() {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// waitFor blocks until ch receives a ping. A closed channel yields nil so
// the program stops re-arming the command.
func waitFor(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return refreshMsg{}
	}
}
