// Package nav implements the menu navigator: a stack of open menus, the
// selection within the top menu, and menu visibility. Navigation actions
// mutate that state and schedule key presses through an Emitter.
//
// Actions normally arrive from the input poll loop, while menu reloads and
// the renderer's hide key may mutate from other goroutines. Every mutation
// holds the state lock; Snapshot always returns a consistent copy.
package nav

import (
	"sync"

	"github.com/atomicstack/pad-overlay/internal/input"
	"github.com/atomicstack/pad-overlay/internal/keys"
	"github.com/atomicstack/pad-overlay/internal/logging/events"
	"github.com/atomicstack/pad-overlay/internal/menu"
)

// Emitter schedules a key sequence for asynchronous emission.
type Emitter interface {
	Emit(label string, seq keys.Sequence)
}

// VisibilityFunc observes visibility flips.
type VisibilityFunc func(visible bool)

// Navigator is the menu state machine.
type Navigator struct {
	mu        sync.RWMutex
	root      *menu.Node
	stack     []*menu.Node
	selection int
	visible   bool
	emitter   Emitter

	obsMu     sync.Mutex
	observers map[int]VisibilityFunc
	nextObs   int
}

// effects are side effects collected while the state lock is held and run
// in order after it is released.
type effects struct {
	emits      []emission
	visibility []bool
}

type emission struct {
	label string
	seq   keys.Sequence
}

func (e *effects) emit(label string, seq keys.Sequence) {
	if len(seq) == 0 {
		return
	}
	e.emits = append(e.emits, emission{label: label, seq: seq})
}

// New creates a closed navigator over root. A nil root leaves the
// navigator inert until SetRoot is called.
func New(root *menu.Node, emitter Emitter) *Navigator {
	return &Navigator{
		root:      root,
		emitter:   emitter,
		observers: make(map[int]VisibilityFunc),
	}
}

// OnVisibilityChange registers fn for visibility flips. The returned
// function removes the registration.
func (n *Navigator) OnVisibilityChange(fn VisibilityFunc) func() {
	n.obsMu.Lock()
	defer n.obsMu.Unlock()
	id := n.nextObs
	n.nextObs++
	n.observers[id] = fn
	return func() {
		n.obsMu.Lock()
		delete(n.observers, id)
		n.obsMu.Unlock()
	}
}

// Dispatch applies a logical action.
func (n *Navigator) Dispatch(a input.Action) {
	switch a {
	case input.ActionUp:
		n.Up()
	case input.ActionDown:
		n.Down()
	case input.ActionLeft:
		n.Left()
	case input.ActionRight:
		n.Right()
	case input.ActionSelect:
		n.Select()
	}
}

// Up moves the selection up, wrapping to the last item.
func (n *Navigator) Up() {
	n.apply(func(fx *effects) { n.move(-1) })
}

// Down moves the selection down, wrapping to the first item.
func (n *Navigator) Down() {
	n.apply(func(fx *effects) { n.move(1) })
}

// Left backs out of the current submenu, or closes the menu at the root.
func (n *Navigator) Left() {
	n.apply(n.back)
}

// Right behaves like Select.
func (n *Navigator) Right() {
	n.Select()
}

// Select activates the selected item.
func (n *Navigator) Select() {
	n.apply(n.activate)
}

// Close hides the menu and clears the navigation stack.
func (n *Navigator) Close() {
	var fx effects
	n.mu.Lock()
	n.close(&fx)
	n.mu.Unlock()
	n.run(&fx)
}

// SetRoot swaps in a new menu tree. An open menu is closed first so the
// stack never mixes nodes from different trees.
func (n *Navigator) SetRoot(root *menu.Node) {
	var fx effects
	n.mu.Lock()
	n.close(&fx)
	n.root = root
	n.mu.Unlock()
	n.run(&fx)
}

// apply runs a navigation step, opening the menu instead when it is closed.
func (n *Navigator) apply(step func(*effects)) {
	var fx effects
	n.mu.Lock()
	if !n.visible {
		n.open(&fx)
	} else {
		step(&fx)
	}
	n.mu.Unlock()
	n.run(&fx)
}

func (n *Navigator) open(fx *effects) {
	if n.root == nil {
		return
	}
	n.stack = append(n.stack[:0], n.root)
	n.selection = 0
	n.visible = true
	fx.visibility = append(fx.visibility, true)
	events.Menu.Open(n.root.Label)
}

func (n *Navigator) close(fx *effects) {
	depth := len(n.stack)
	n.stack = n.stack[:0]
	n.selection = 0
	if !n.visible {
		return
	}
	n.visible = false
	fx.visibility = append(fx.visibility, false)
	events.Menu.Close(depth)
}

func (n *Navigator) move(delta int) {
	top := n.top()
	count := len(top.Children)
	if count == 0 {
		return
	}
	n.selection = ((n.selection+delta)%count + count) % count
	events.Menu.Cursor(top.Label, n.selection)
}

func (n *Navigator) back(fx *effects) {
	if len(n.stack) <= 1 {
		n.close(fx)
		return
	}
	leaving := n.top()
	fx.emit(leaving.Label, leaving.Exit())
	n.stack = n.stack[:len(n.stack)-1]
	n.selection = 0
	events.Menu.Pop(leaving.Label, len(n.stack))
}

func (n *Navigator) activate(fx *effects) {
	top := n.top()
	if len(top.Children) == 0 {
		return
	}
	item := top.Children[n.selection]
	events.Menu.Select(top.Label, item.Label, n.selection)
	if item.HasChildren() {
		n.stack = append(n.stack, item)
		n.selection = 0
		events.Menu.Push(item.Label, len(n.stack))
	}
	fx.emit(item.Label, item.Action())
	if item.CloseAfterAction {
		n.close(fx)
	}
}

func (n *Navigator) top() *menu.Node {
	return n.stack[len(n.stack)-1]
}

func (n *Navigator) run(fx *effects) {
	if n.emitter != nil {
		for _, e := range fx.emits {
			n.emitter.Emit(e.label, e.seq)
		}
	}
	if len(fx.visibility) == 0 {
		return
	}
	n.obsMu.Lock()
	observers := make([]VisibilityFunc, 0, len(n.observers))
	for i := 0; i < n.nextObs; i++ {
		if fn, ok := n.observers[i]; ok {
			observers = append(observers, fn)
		}
	}
	n.obsMu.Unlock()
	for _, visible := range fx.visibility {
		for _, fn := range observers {
			fn(visible)
		}
	}
}
