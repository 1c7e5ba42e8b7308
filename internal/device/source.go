// Package device acquires a game controller and polls it at a fixed cadence,
// turning state changes into raw input events.
package device

import (
	"errors"
	"strings"

	"github.com/atomicstack/pad-overlay/internal/input"
)

var (
	ErrNoGUID       = errors.New("no device identifier configured")
	ErrNoDevice     = errors.New("no matching device attached")
	ErrDisconnected = errors.New("device disconnected")
)

// Source is an acquired controller.
type Source interface {
	Name() string
	// Poll returns the state changes since the previous call.
	Poll() ([]input.Event, error)
	Close() error
}

// Opener acquires a Source. It returns ErrNoDevice while the controller is
// not attached.
type Opener func() (Source, error)

// Info describes an attached controller.
type Info struct {
	Index   int
	Name    string
	GUID    string
	Buttons int
	Hats    int
}

// Hat direction bits as reported by SDL.
const (
	hatUp    = 0x01
	hatRight = 0x02
	hatDown  = 0x04
	hatLeft  = 0x08
)

var hatAngles = map[uint8]int{
	hatUp:              0,
	hatUp | hatRight:   4500,
	hatRight:           9000,
	hatDown | hatRight: 13500,
	hatDown:            18000,
	hatDown | hatLeft:  22500,
	hatLeft:            27000,
	hatUp | hatLeft:    31500,
}

// HatAngle converts a hat direction bitmask to hundredths of a degree, or
// input.POVNeutral when centred or contradictory.
func HatAngle(mask uint8) int {
	if angle, ok := hatAngles[mask]; ok {
		return angle
	}
	return input.POVNeutral
}

// NormalizeGUID strips braces, dashes and case so GUIDs copied from other
// tools compare equal.
func NormalizeGUID(guid string) string {
	r := strings.NewReplacer("{", "", "}", "", "-", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(guid)))
}
