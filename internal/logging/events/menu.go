package events

import "github.com/moodio/moodio-agent/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) ModeSwitch(from, to string) {
	logging.Trace("menu.mode.switch", map[string]interface{}{"from": from, "to": to})
}

func (MenuTracer) Resolve(mode string, selections map[string]string) {
	logging.Trace("menu.resolve", map[string]interface{}{"mode": mode, "selections": selections})
}

func (MenuTracer) Pick(category, option string) {
	logging.Trace("menu.pick", map[string]interface{}{"category": category, "option": option})
}

func (MenuTracer) ConfigReload(path string) {
	logging.Trace("menu.config.reload", map[string]interface{}{"path": path})
}

func (MenuTracer) ConfigError(path string, err error) {
	if err == nil {
		return
	}
	logging.Trace("menu.config.error", map[string]interface{}{"path": path, "error": err.Error()})
}
