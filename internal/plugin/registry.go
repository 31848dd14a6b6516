package plugin

import (
	"fmt"
	"sync"

	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/logging"
	"github.com/dshills/loom/internal/ui"
)

// Handle identifies a registration. InvalidHandle is returned on failure.
type Handle uint64

// InvalidHandle is never issued to a registered plugin.
const InvalidHandle Handle = 0

// Registry stores plugins in descending priority order.
type Registry struct {
	mu sync.RWMutex

	// plugins is sorted by descending priority, insertion order among equals.
	plugins []*Plugin
	byID    map[string]*Plugin
	handles map[string]Handle

	nextHandle Handle

	log     *logging.Logger
	onPanic func(err *PanicError)
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *logging.Logger) RegistryOption {
	return func(r *Registry) {
		r.log = logging.OrNop(l).WithComponent("plugin")
	}
}

// WithPanicHandler sets a callback for recovered plugin panics.
func WithPanicHandler(fn func(err *PanicError)) RegistryOption {
	return func(r *Registry) {
		r.onPanic = fn
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byID:    make(map[string]*Plugin),
		handles: make(map[string]Handle),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register inserts p after the last plugin whose priority is at least
// p.Priority. It returns InvalidHandle for an invalid plugin or a
// duplicate id.
func (r *Registry) Register(p *Plugin) Handle {
	if p == nil || p.ID == "" || p.VTable == nil {
		r.log.Warn("register: %v", ErrInvalidPlugin)
		return InvalidHandle
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; exists {
		r.log.Warn("register %q: %v", p.ID, ErrDuplicateID)
		return InvalidHandle
	}

	i := len(r.plugins)
	for j, q := range r.plugins {
		if q.Priority < p.Priority {
			i = j
			break
		}
	}
	r.plugins = append(r.plugins, nil)
	copy(r.plugins[i+1:], r.plugins[i:])
	r.plugins[i] = p

	p.state = StateRegistered
	r.byID[p.ID] = p
	r.nextHandle++
	r.handles[p.ID] = r.nextHandle

	r.log.Debug("registered %s (priority=%d, position=%d)", p.ID, p.Priority, i)
	return r.nextHandle
}

// Get returns the plugin with id, or nil.
func (r *Registry) Get(id string) *Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// Handle returns the handle issued to id, or InvalidHandle.
func (r *Registry) Handle(id string) Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.handles[id]
}

// Len returns the number of registered plugins.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// IDs returns plugin ids in dispatch order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		ids[i] = p.ID
	}
	return ids
}

// InitPlugin builds the context for id and runs its Init. It returns false
// when the plugin is unknown, already initialized, or Init fails; a failed
// plugin stays registered in StateFailed.
func (r *Registry) InitPlugin(id string, api API) bool {
	p := r.Get(id)
	if p == nil {
		r.log.Warn("init %q: %v", id, ErrNotFound)
		return false
	}
	if p.state != StateRegistered {
		r.log.Warn("init %q: already %s", id, p.state)
		return false
	}

	var log *logging.Logger
	if api != nil {
		log = api.Logger()
	}
	p.ctx = &Context{
		ID:       p.ID,
		UserData: p.UserData,
		Nodes:    ui.NewPool(p.ID),
		API:      api,
		Log:      logging.OrNop(log).WithField("plugin", p.ID),
	}

	ok := r.safeInit(p)
	if ok {
		p.state = StateInitialized
		r.log.Info("initialized %s", id)
	} else {
		p.state = StateFailed
		r.log.Warn("init %s returned false; plugin left inert", id)
	}
	return ok
}

// InitAll initializes every registered plugin in priority order and
// returns the ids that failed.
func (r *Registry) InitAll(api API) []string {
	var failed []string
	for _, p := range r.snapshot() {
		if p.state != StateRegistered {
			continue
		}
		if !r.InitPlugin(p.ID, api) {
			failed = append(failed, p.ID)
		}
	}
	return failed
}

// Dispatch delivers ev to plugins in priority order and stops at the first
// plugin that returns true or sets ev.Handled. The plugin list is copied
// under the lock and the callbacks run outside it, so OnEvent may dispatch
// again.
func (r *Registry) Dispatch(ev *event.Event) bool {
	if ev == nil {
		return false
	}
	if ev.Handled {
		return true
	}
	for _, p := range r.snapshot() {
		if !p.state.Live() || !p.wants(ev.Type) {
			continue
		}
		if r.safeOnEvent(p, ev) || ev.Handled {
			ev.Handled = true
			return true
		}
	}
	return false
}

// Update calls every live plugin's Update in priority order while holding
// the read lock.
func (r *Registry) Update(dt float64) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.state.Live() {
			r.safeUpdate(p, dt)
		}
	}
}

// ShutdownAll shuts plugins down in reverse priority order and releases
// every node each one created through its context.
func (r *Registry) ShutdownAll() {
	plugins := r.snapshot()
	for i := len(plugins) - 1; i >= 0; i-- {
		p := plugins[i]
		if p.state.Live() {
			r.safeShutdown(p)
			if n := p.ctx.Nodes.ReleaseAll(); n > 0 {
				r.log.Debug("released %d nodes of %s", n, p.ID)
			}
		}
		p.state = StateShutdown
	}
}

func (r *Registry) snapshot() []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Plugin, len(r.plugins))
	copy(out, r.plugins)
	return out
}

func (r *Registry) recovered(p *Plugin, call string, v any) {
	perr := &PanicError{Plugin: p.ID, Call: call, Value: v}
	r.log.Error("%v: %s", perr, fmt.Sprint(v))
	if r.onPanic != nil {
		r.onPanic(perr)
	}
}

func (r *Registry) safeInit(p *Plugin) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			r.recovered(p, "init", v)
			ok = false
		}
	}()
	return p.VTable.Init(p.ctx)
}

func (r *Registry) safeUpdate(p *Plugin, dt float64) {
	defer func() {
		if v := recover(); v != nil {
			r.recovered(p, "update", v)
		}
	}()
	p.VTable.Update(p.ctx, dt)
}

func (r *Registry) safeShutdown(p *Plugin) {
	defer func() {
		if v := recover(); v != nil {
			r.recovered(p, "shutdown", v)
		}
	}()
	p.VTable.Shutdown(p.ctx)
}

func (r *Registry) safeOnEvent(p *Plugin, ev *event.Event) (handled bool) {
	defer func() {
		if v := recover(); v != nil {
			r.recovered(p, "on_event", v)
			handled = false
		}
	}()
	return p.VTable.OnEvent(p.ctx, ev)
}
