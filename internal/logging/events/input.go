package events

import "github.com/atomicstack/pad-overlay/internal/logging"

type InputTracer struct{}

type DeviceTracer struct{}

var (
	Input  = InputTracer{}
	Device = DeviceTracer{}
)

func (InputTracer) Action(action, offset string, value int) {
	logging.Trace("input.action", map[string]interface{}{
		"action": action,
		"offset": offset,
		"value":  value,
	})
}

func (DeviceTracer) Open(name, guid string) {
	logging.Trace("device.open", map[string]interface{}{"name": name, "guid": guid})
}

func (DeviceTracer) Lost(err error) {
	payload := map[string]interface{}{}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("device.lost", payload)
}
