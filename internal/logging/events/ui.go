package events

import "github.com/atomicstack/pad-overlay/internal/logging"

type UITracer struct{}

var UI = UITracer{}

func (UITracer) Visibility(visible bool) {
	logging.Trace("ui.visibility", map[string]interface{}{"visible": visible})
}

func (UITracer) Resize(width, height int) {
	logging.Trace("ui.resize", map[string]interface{}{"width": width, "height": height})
}
