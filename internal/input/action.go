package input

import (
	"fmt"
	"strings"
)

// Action is a logical navigation action produced by the mapper.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionSelect
)

var actionNames = [...]string{
	ActionNone:   "None",
	ActionUp:     "Up",
	ActionDown:   "Down",
	ActionLeft:   "Left",
	ActionRight:  "Right",
	ActionSelect: "Select",
}

// Actions lists the mappable actions in their canonical order.
func Actions() []Action {
	return []Action{ActionUp, ActionDown, ActionLeft, ActionRight, ActionSelect}
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction resolves an action name case-insensitively.
func ParseAction(name string) (Action, error) {
	trimmed := strings.TrimSpace(name)
	for _, a := range Actions() {
		if strings.EqualFold(a.String(), trimmed) {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}
