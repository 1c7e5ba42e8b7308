package input

// Mapper converts raw device events into edge-triggered actions. It owns
// the last observed value of every offset it has seen. A Mapper is not safe
// for concurrent use; it belongs to the polling goroutine.
type Mapper struct {
	bindings map[Offset][]Binding
	state    map[Offset]int
}

// NewMapper builds a mapper for t. A nil table yields a mapper that never
// fires.
func NewMapper(t *Table) *Mapper {
	m := &Mapper{
		bindings: make(map[Offset][]Binding),
		state:    make(map[Offset]int),
	}
	if t != nil {
		for _, b := range t.Bindings {
			m.bindings[b.Offset] = append(m.bindings[b.Offset], b)
		}
	}
	return m
}

// Observe records ev and reports the action it triggers, if any.
func (m *Mapper) Observe(ev Event) (Action, bool) {
	prev, seen := m.state[ev.Offset]
	if !seen {
		prev = initialValue(ev.Offset.Kind)
	}
	m.state[ev.Offset] = ev.Value

	for _, b := range m.bindings[ev.Offset] {
		switch ev.Offset.Kind {
		case KindButton:
			if prev == 0 && ev.Value != 0 {
				return b.Action, true
			}
		case KindPOV:
			if prev != b.Target && ev.Value == b.Target {
				return b.Action, true
			}
		}
	}
	return ActionNone, false
}

// Value returns the last observed raw value for o.
func (m *Mapper) Value(o Offset) int {
	if v, ok := m.state[o]; ok {
		return v
	}
	return initialValue(o.Kind)
}

// Reset forgets all observed state.
func (m *Mapper) Reset() {
	m.state = make(map[Offset]int)
}

func initialValue(k Kind) int {
	if k == KindPOV {
		return POVNeutral
	}
	return 0
}
