// Package dispatcher routes raw controller events through the edge detector
// into the menu navigator.
package dispatcher

import (
	"github.com/atomicstack/pad-overlay/internal/input"
	"github.com/atomicstack/pad-overlay/internal/logging/events"
)

// Navigator receives logical actions.
type Navigator interface {
	Dispatch(input.Action)
}

type Result struct {
	Action input.Action
	Fired  bool
}

type Dispatcher struct {
	mapper *input.Mapper
	nav    Navigator
}

func New(m *input.Mapper, nav Navigator) *Dispatcher {
	if m == nil {
		m = input.NewMapper(nil)
	}
	return &Dispatcher{mapper: m, nav: nav}
}

// Handle feeds ev to the mapper and forwards the resulting action, if any.
// It must be called from a single goroutine.
func (d *Dispatcher) Handle(ev input.Event) Result {
	action, ok := d.mapper.Observe(ev)
	if !ok {
		return Result{}
	}
	events.Input.Action(action.String(), ev.Offset.String(), ev.Value)
	if d.nav != nil {
		d.nav.Dispatch(action)
	}
	return Result{Action: action, Fired: true}
}
