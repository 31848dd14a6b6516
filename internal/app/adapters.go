package app

import (
	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/input/key"
	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/logging"
	"github.com/dshills/loom/internal/ui"
)

// hostAPI adapts the Application to plugin.API.
type hostAPI struct {
	app *Application
}

// Emit allocates from the frame arena and dispatches at once.
func (h *hostAPI) Emit(t event.Type, p event.Payload) (event.Ref, bool) {
	return h.app.bus.Emit(t, p)
}

func (h *hostAPI) Dispatch(ref event.Ref) bool {
	return h.app.bus.Dispatch(ref)
}

func (h *hostAPI) RequestRender() {
	h.app.sched.RequestRender()
}

func (h *hostAPI) RequestRenderImmediate() {
	h.app.sched.RequestRenderImmediate()
}

func (h *hostAPI) Root() *ui.Node {
	return h.app.root
}

func (h *hostAPI) FindNode(id string) *ui.Node {
	return h.app.root.FindByID(id)
}

// RegisterShortcut binds chord for a plugin. Plugin bindings are kept so
// they survive a configuration reload.
func (h *hostAPI) RegisterShortcut(chord key.Chord, signal string) bool {
	if !h.app.shortcuts.Register(chord, signal) {
		return false
	}
	h.app.pluginShortcuts = append(h.app.pluginShortcuts, binding{chord: chord, signal: signal})
	return true
}

func (h *hostAPI) WindowSize() (int, int) {
	return h.app.width, h.app.height
}

// ElementBounds answers from the most recent layout pass.
func (h *hostAPI) ElementBounds(id string) (layout.Rect, bool) {
	return h.app.comp.Bounds(id)
}

func (h *hostAPI) Logger() *logging.Logger {
	return h.app.log
}
