package input

import "fmt"

// Kind distinguishes the control families a device reports.
type Kind int

const (
	KindButton Kind = iota
	KindPOV
)

// POVNeutral is the raw value a hat switch reports when no direction is held.
const POVNeutral = -1

// Offset identifies a single control on the device.
type Offset struct {
	Kind  Kind
	Index int
}

// Button returns the offset of the zero-based button n.
func Button(n int) Offset {
	return Offset{Kind: KindButton, Index: n}
}

// POV returns the offset of the zero-based hat switch n.
func POV(n int) Offset {
	return Offset{Kind: KindPOV, Index: n}
}

func (o Offset) String() string {
	switch o.Kind {
	case KindButton:
		return fmt.Sprintf("Button%d", o.Index)
	case KindPOV:
		return fmt.Sprintf("POV%d", o.Index)
	default:
		return fmt.Sprintf("Offset(%d,%d)", o.Kind, o.Index)
	}
}

// Event is a single raw state change reported by a device. Buttons report 0
// when released and a nonzero value when pressed; hat switches report the
// angle in hundredths of a degree or POVNeutral.
type Event struct {
	Offset Offset
	Value  int
}
