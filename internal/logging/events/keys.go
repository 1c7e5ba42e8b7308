package events

import "github.com/atomicstack/pad-overlay/internal/logging"

type KeysTracer struct{}

var Keys = KeysTracer{}

func (KeysTracer) Queue(id, label string, keys []string) {
	logging.Trace("keys.queue", map[string]interface{}{"id": id, "label": label, "keys": keys})
}

func (KeysTracer) Drop(id, label string) {
	logging.Trace("keys.drop", map[string]interface{}{"id": id, "label": label})
}

func (KeysTracer) Press(id, key string) {
	logging.Trace("keys.press", map[string]interface{}{"id": id, "key": key})
}

func (KeysTracer) Invalid(id, key string, err error) {
	payload := map[string]interface{}{"id": id, "key": key}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("keys.invalid", payload)
}

func (KeysTracer) Cancel(id string, remaining int) {
	logging.Trace("keys.cancel", map[string]interface{}{"id": id, "remaining": remaining})
}

func (KeysTracer) Done(id string, pressed int) {
	logging.Trace("keys.done", map[string]interface{}{"id": id, "pressed": pressed})
}

func (KeysTracer) DryRun(key string, code int) {
	logging.Trace("keys.dry-run", map[string]interface{}{"key": key, "code": code})
}
