// Package plugintest provides a recording plugin.API for tests.
package plugintest

import (
	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/input/key"
	"github.com/dshills/loom/internal/input/shortcut"
	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/logging"
	"github.com/dshills/loom/internal/ui"
)

// Emission is a copy of an emitted event. Events themselves are frame
// scoped, so tests inspect these instead.
type Emission struct {
	Type    event.Type
	Payload event.Payload
	Handled bool
	Dropped bool
}

// API implements plugin.API over a real bus, a tree and a shortcut table,
// and records what plugins ask of it.
type API struct {
	Bus       *event.Bus
	Tree      *ui.Node
	Shortcuts *shortcut.Registry
	Log       *logging.Logger

	Width, Height int
	Rects         map[string]layout.Rect

	Emitted          []Emission
	Renders          int
	ImmediateRenders int
}

// New creates an API with an empty root container and an 80x24 viewport.
func New() *API {
	return &API{
		Bus:       event.NewBus(),
		Tree:      ui.NewNode("root", ui.KindContainer),
		Shortcuts: shortcut.NewRegistry(nil),
		Log:       logging.Nop(),
		Width:     80,
		Height:    24,
		Rects:     make(map[string]layout.Rect),
	}
}

// Emit records and emits on the bus.
func (a *API) Emit(t event.Type, p event.Payload) (event.Ref, bool) {
	ref, handled := a.Bus.Emit(t, p)
	a.Emitted = append(a.Emitted, Emission{Type: t, Payload: p, Handled: handled, Dropped: ref.Nil()})
	return ref, handled
}

// Dispatch dispatches on the bus.
func (a *API) Dispatch(ref event.Ref) bool {
	return a.Bus.Dispatch(ref)
}

// RequestRender counts batched render requests.
func (a *API) RequestRender() { a.Renders++ }

// RequestRenderImmediate counts immediate render requests.
func (a *API) RequestRenderImmediate() { a.ImmediateRenders++ }

// Root returns the tree root.
func (a *API) Root() *ui.Node { return a.Tree }

// FindNode searches the tree.
func (a *API) FindNode(id string) *ui.Node { return a.Tree.FindByID(id) }

// RegisterShortcut registers on the shortcut table.
func (a *API) RegisterShortcut(chord key.Chord, signal string) bool {
	return a.Shortcuts.Register(chord, signal)
}

// WindowSize returns Width and Height.
func (a *API) WindowSize() (int, int) { return a.Width, a.Height }

// ElementBounds answers from Rects.
func (a *API) ElementBounds(id string) (layout.Rect, bool) {
	r, ok := a.Rects[id]
	return r, ok
}

// Logger returns Log.
func (a *API) Logger() *logging.Logger { return a.Log }

// Count returns how many emissions of type t were recorded.
func (a *API) Count(t event.Type) int {
	n := 0
	for _, e := range a.Emitted {
		if e.Type == t {
			n++
		}
	}
	return n
}

// Last returns the most recent emission of type t.
func (a *API) Last(t event.Type) (Emission, bool) {
	for i := len(a.Emitted) - 1; i >= 0; i-- {
		if a.Emitted[i].Type == t {
			return a.Emitted[i], true
		}
	}
	return Emission{}, false
}
