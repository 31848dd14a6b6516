package app

import (
	"math"

	"github.com/dshills/loom/internal/event"
)

// Bus priorities of the host's own subscribers. Plugins see every event
// before the host's fallback handlers do.
const (
	pluginsPriority = 0
	hostPriority    = math.MinInt
)

// subscribe connects the plugin registry and the host's signal handler
// to the bus.
func (app *Application) subscribe() error {
	if _, err := app.bus.Subscribe("plugins", pluginsPriority, app.plugins.Dispatch); err != nil {
		return err
	}
	if _, err := app.bus.Subscribe("app", hostPriority, app.onSignal, event.Signal); err != nil {
		return err
	}
	return nil
}

// onSignal handles host signals no plugin consumed.
func (app *Application) onSignal(ev *event.Event) bool {
	p, ok := ev.Payload.(event.SignalPayload)
	if !ok {
		return false
	}
	switch p.Name {
	case QuitSignal:
		app.log.Info("quit requested")
		app.quit = true
		return true
	default:
		return false
	}
}
