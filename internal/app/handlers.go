package app

import (
	"unicode"

	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/input/key"
	"github.com/dshills/loom/internal/renderer/backend"
)

// quitChord is bound to QuitSignal unless configuration claims it.
var quitChord = key.NewChord(key.KeyRune, 'q', key.ModCtrl)

// textMods suppress TextInput for a key press.
const textMods = key.ModCtrl | key.ModAlt | key.ModMeta

// handleInput turns one platform input into typed events and adjusts the
// render schedule for its input class.
func (app *Application) handleInput(in backend.Input) {
	switch p := in.Payload.(type) {
	case event.Mouse:
		app.pointer.x, app.pointer.y = p.X, p.Y
		switch in.Type {
		case event.MouseDown:
			if p.Button != event.ButtonLeft {
				app.sched.RequestRender()
				break
			}
			app.pointer.down = true
			app.pointer.pressed = true
			// Hit-testing needs a frame laid out with this pointer state.
			app.sched.RequestRenderImmediate()
		case event.MouseUp:
			if p.Button == event.ButtonLeft || p.Button == event.ButtonNone {
				app.pointer.down = false
			}
			app.sched.RequestRender()
		default:
			if p.Button != event.ButtonNone {
				app.sched.Animate()
			} else {
				app.sched.RequestRender()
			}
		}
		app.bus.Emit(in.Type, p)

	case event.ScrollPayload:
		app.pointer.x, app.pointer.y = p.X, p.Y
		app.sched.Animate()
		app.bus.Emit(event.Scroll, p)

	case event.Resize:
		app.width, app.height = p.Width, p.Height
		app.sched.RequestRenderImmediate()
		app.bus.Emit(event.WindowResize, p)

	case event.Key:
		app.handleKey(p)

	default:
		app.bus.Emit(in.Type, in.Payload)
	}
}

// handleKey maps a key press through the shortcut table. A bound chord
// becomes a Signal; anything else is a KeyDown, followed by TextInput for
// an unconsumed printable rune.
func (app *Application) handleKey(k event.Key) {
	if signal, ok := app.shortcuts.LookupChord(k.Chord()); ok {
		app.log.Debug("shortcut %s -> %s", k.Chord(), signal)
		app.bus.Emit(event.Signal, event.SignalPayload{Name: signal})
		return
	}

	_, handled := app.bus.Emit(event.KeyDown, k)
	if handled || k.Key != key.KeyRune || k.Mods&textMods != 0 || !unicode.IsPrint(k.Rune) {
		return
	}
	app.bus.Emit(event.TextInput, event.Text{Text: string(k.Rune)})
}
