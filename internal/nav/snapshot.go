package nav

import "github.com/atomicstack/pad-overlay/internal/menu"

// Snapshot is a consistent copy of the navigator state for rendering.
type Snapshot struct {
	Visible   bool
	Title     string
	Items     []string
	Selection int
	Path      []string
}

// Depth reports the number of open menu levels.
func (s Snapshot) Depth() int {
	return len(s.Path)
}

// Snapshot returns the current state.
func (n *Navigator) Snapshot() Snapshot {
	n.mu.RLock()
	defer n.mu.RUnlock()
	snap := Snapshot{Visible: n.visible, Selection: n.selection}
	if len(n.stack) == 0 {
		return snap
	}
	top := n.top()
	snap.Title = top.Label
	snap.Items = top.Labels()
	snap.Path = make([]string, len(n.stack))
	for i, node := range n.stack {
		snap.Path[i] = node.Label
	}
	return snap
}

// Current returns the top-of-stack node and the selection index. The node
// is nil while the menu is closed.
func (n *Navigator) Current() (*menu.Node, int) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if len(n.stack) == 0 {
		return nil, n.selection
	}
	return n.top(), n.selection
}

// Visible reports whether the menu is open.
func (n *Navigator) Visible() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.visible
}
