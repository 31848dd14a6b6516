package plugin

import (
	"github.com/dshills/loom/internal/event"
)

// VTable is the set of callbacks a plugin implements.
type VTable interface {
	// Init runs once. Returning false leaves the plugin registered but Failed.
	Init(ctx *Context) bool

	// Update runs every frame with the elapsed time in seconds.
	Update(ctx *Context, dt float64)

	// Shutdown runs once at process exit.
	Shutdown(ctx *Context)

	// OnEvent receives dispatched events. Returning true consumes the event.
	OnEvent(ctx *Context, ev *event.Event) bool
}

// Funcs adapts plain functions to a VTable. Nil fields are no-ops and a nil
// InitFunc succeeds.
type Funcs struct {
	InitFunc     func(ctx *Context) bool
	UpdateFunc   func(ctx *Context, dt float64)
	ShutdownFunc func(ctx *Context)
	OnEventFunc  func(ctx *Context, ev *event.Event) bool
}

// Init implements VTable.
func (f Funcs) Init(ctx *Context) bool {
	if f.InitFunc == nil {
		return true
	}
	return f.InitFunc(ctx)
}

// Update implements VTable.
func (f Funcs) Update(ctx *Context, dt float64) {
	if f.UpdateFunc != nil {
		f.UpdateFunc(ctx, dt)
	}
}

// Shutdown implements VTable.
func (f Funcs) Shutdown(ctx *Context) {
	if f.ShutdownFunc != nil {
		f.ShutdownFunc(ctx)
	}
}

// OnEvent implements VTable.
func (f Funcs) OnEvent(ctx *Context, ev *event.Event) bool {
	if f.OnEventFunc == nil {
		return false
	}
	return f.OnEventFunc(ctx, ev)
}

// Plugin is a registered unit of behavior.
type Plugin struct {
	// ID is unique within a registry.
	ID string

	// Priority orders dispatch. Higher runs first.
	Priority int

	VTable VTable

	// UserData seeds Context.UserData. It is owned by the plugin.
	UserData any

	// Events restricts OnEvent to these types. Empty means every type.
	Events []event.Type

	state State
	ctx   *Context
}

// New creates a plugin.
func New(id string, priority int, vt VTable, events ...event.Type) *Plugin {
	return &Plugin{ID: id, Priority: priority, VTable: vt, Events: events}
}

// State returns the lifecycle state.
func (p *Plugin) State() State {
	return p.state
}

// Context returns the context built by InitPlugin, or nil before that.
func (p *Plugin) Context() *Context {
	return p.ctx
}

func (p *Plugin) wants(t event.Type) bool {
	if len(p.Events) == 0 {
		return true
	}
	for _, e := range p.Events {
		if e == t {
			return true
		}
	}
	return false
}
