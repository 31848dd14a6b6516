package plugin

import (
	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/input/key"
	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/logging"
	"github.com/dshills/loom/internal/ui"
)

// API is the host surface a plugin reaches through its Context.
type API interface {
	// Emit allocates and dispatches an event. A Nil handle means the
	// emission was dropped.
	Emit(t event.Type, p event.Payload) (event.Ref, bool)

	// Dispatch delivers an already allocated event.
	Dispatch(ref event.Ref) bool

	// RequestRender schedules a batched render.
	RequestRender()

	// RequestRenderImmediate schedules a render for the next iteration.
	RequestRenderImmediate()

	// Root returns the root of the UI tree.
	Root() *ui.Node

	// FindNode searches the UI tree by id.
	FindNode(id string) *ui.Node

	// RegisterShortcut binds a chord to a signal name. The first
	// registrant of a chord wins.
	RegisterShortcut(chord key.Chord, signal string) bool

	// WindowSize returns the viewport size.
	WindowSize() (width, height int)

	// ElementBounds returns the bounds of a node from the last layout.
	ElementBounds(id string) (layout.Rect, bool)

	// Logger returns the host logger.
	Logger() *logging.Logger
}

// Context is handed to every VTable call of one plugin.
type Context struct {
	// ID is the plugin id.
	ID string

	// UserData is the plugin's private slot.
	UserData any

	// Nodes tracks the UI nodes the plugin creates. They are released in
	// bulk at shutdown.
	Nodes *ui.Pool

	API API

	// Log is scoped to the plugin.
	Log *logging.Logger
}

// Emit is shorthand for ctx.API.Emit.
func (c *Context) Emit(t event.Type, p event.Payload) (event.Ref, bool) {
	return c.API.Emit(t, p)
}

// Signal emits a named signal event.
func (c *Context) Signal(name string) bool {
	_, handled := c.API.Emit(event.Signal, event.SignalPayload{Name: name})
	return handled
}
