// Package sdljoy reads game controllers through SDL's joystick API.
package sdljoy

import (
	"fmt"
	"sync"

	"github.com/atomicstack/pad-overlay/internal/device"
	"github.com/atomicstack/pad-overlay/internal/input"
	"github.com/veandco/go-sdl2/sdl"
)

var initMu sync.Mutex

// Init starts the SDL joystick subsystem. Events are not queued; state is
// read by polling.
func Init() error {
	initMu.Lock()
	defer initMu.Unlock()
	if err := sdl.InitSubSystem(sdl.INIT_JOYSTICK); err != nil {
		return fmt.Errorf("init sdl joystick: %w", err)
	}
	sdl.JoystickEventState(sdl.IGNORE)
	return nil
}

// Quit shuts the joystick subsystem down. Every Joystick must be closed first.
func Quit() {
	initMu.Lock()
	defer initMu.Unlock()
	sdl.QuitSubSystem(sdl.INIT_JOYSTICK)
}

// List describes every attached controller.
func List() []device.Info {
	sdl.JoystickUpdate()
	n := sdl.NumJoysticks()
	infos := make([]device.Info, 0, n)
	for i := 0; i < n; i++ {
		info := device.Info{
			Index: i,
			Name:  sdl.JoystickNameForIndex(i),
			GUID:  sdl.JoystickGetGUIDString(sdl.JoystickGetDeviceGUID(i)),
		}
		if joy := sdl.JoystickOpen(i); joy != nil {
			info.Buttons = joy.NumButtons()
			info.Hats = joy.NumHats()
			joy.Close()
		}
		infos = append(infos, info)
	}
	return infos
}

// OpenGUID returns an opener for the controller whose GUID matches guid.
func OpenGUID(guid string) device.Opener {
	want := device.NormalizeGUID(guid)
	return func() (device.Source, error) {
		if want == "" {
			return nil, device.ErrNoGUID
		}
		sdl.JoystickUpdate()
		for i := 0; i < sdl.NumJoysticks(); i++ {
			got := sdl.JoystickGetGUIDString(sdl.JoystickGetDeviceGUID(i))
			if device.NormalizeGUID(got) != want {
				continue
			}
			joy := sdl.JoystickOpen(i)
			if joy == nil {
				return nil, fmt.Errorf("open joystick %d: %w", i, sdl.GetError())
			}
			return newJoystick(joy), nil
		}
		return nil, fmt.Errorf("%w: %s", device.ErrNoDevice, guid)
	}
}

// Joystick is an acquired SDL joystick.
type Joystick struct {
	joy     *sdl.Joystick
	name    string
	buttons []int
	hats    []int
	primed  bool
}

func newJoystick(joy *sdl.Joystick) *Joystick {
	return &Joystick{
		joy:     joy,
		name:    joy.Name(),
		buttons: make([]int, joy.NumButtons()),
		hats:    make([]int, joy.NumHats()),
	}
}

func (j *Joystick) Name() string { return j.name }

// Poll reports every button and hat whose value changed since the previous
// call. The first call records a baseline and reports nothing.
func (j *Joystick) Poll() ([]input.Event, error) {
	sdl.JoystickUpdate()
	if !j.joy.Attached() {
		return nil, device.ErrDisconnected
	}
	var evs []input.Event
	for i := range j.buttons {
		v := int(j.joy.Button(i))
		if v != j.buttons[i] && j.primed {
			evs = append(evs, input.Event{Offset: input.Button(i), Value: v})
		}
		j.buttons[i] = v
	}
	for i := range j.hats {
		v := device.HatAngle(j.joy.Hat(i))
		if v != j.hats[i] && j.primed {
			evs = append(evs, input.Event{Offset: input.POV(i), Value: v})
		}
		j.hats[i] = v
	}
	j.primed = true
	return evs, nil
}

func (j *Joystick) Close() error {
	if j.joy != nil {
		j.joy.Close()
		j.joy = nil
	}
	return nil
}

// Version reports the linked SDL library version.
func Version() string {
	var v sdl.Version
	sdl.GetVersion(&v)
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
