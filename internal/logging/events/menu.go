package events

import "github.com/atomicstack/pad-overlay/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Open(root string) {
	logging.Trace("menu.open", map[string]interface{}{"root": root})
}

func (MenuTracer) Close(depth int) {
	logging.Trace("menu.close", map[string]interface{}{"depth": depth})
}

func (MenuTracer) Push(label string, depth int) {
	logging.Trace("menu.push", map[string]interface{}{"label": label, "depth": depth})
}

func (MenuTracer) Pop(label string, depth int) {
	logging.Trace("menu.pop", map[string]interface{}{"label": label, "depth": depth})
}

func (MenuTracer) Cursor(menu string, selection int) {
	logging.Trace("menu.cursor", map[string]interface{}{"menu": menu, "selection": selection})
}

func (MenuTracer) Select(menu, item string, selection int) {
	logging.Trace("menu.select", map[string]interface{}{
		"menu":      menu,
		"item":      item,
		"selection": selection,
	})
}

func (MenuTracer) Reload(path string, err error) {
	payload := map[string]interface{}{"path": path}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("menu.reload", payload)
}
