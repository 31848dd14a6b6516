// Package component provides stateful widgets assembled from UI nodes.
//
// A component owns one subtree of the UI tree and is addressed by a
// numeric ID handed out by a Registry. Destroying a component detaches
// and releases its subtree.
package component

import (
	"errors"
	"sync"

	"github.com/dshills/loom/internal/logging"
	"github.com/dshills/loom/internal/ui"
)

// ID identifies a component. Zero is never issued.
type ID uint64

// InvalidID is the zero ID.
const InvalidID ID = 0

var (
	// ErrNoParent is returned when a component is created without a parent node.
	ErrNoParent = errors.New("component parent is nil")

	// ErrNotFound is returned for unknown component ids.
	ErrNotFound = errors.New("component not found")
)

// Component is the behavior every widget shares.
type Component interface {
	// ID returns the component's registry id.
	ID() ID

	// Root returns the node that holds the component's subtree.
	Root() *ui.Node

	// Destroy detaches and releases the subtree.
	Destroy()
}

// Registry hands out component ids and tracks live components.
type Registry struct {
	mu    sync.Mutex
	next  ID
	items map[ID]Component
	theme TabTheme
	log   *logging.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{
		items: make(map[ID]Component),
		theme: DefaultTabTheme(),
		log:   logging.OrNop(log).WithComponent("component"),
	}
}

// SetTheme sets the colors given to components created afterwards.
func (r *Registry) SetTheme(t TabTheme) {
	r.mu.Lock()
	r.theme = t
	r.mu.Unlock()
}

// Theme returns the default component colors.
func (r *Registry) Theme() TabTheme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.theme
}

// reserve returns the next id.
func (r *Registry) reserve() ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	return r.next
}

func (r *Registry) add(c Component) {
	r.mu.Lock()
	r.items[c.ID()] = c
	r.mu.Unlock()
}

func (r *Registry) forget(id ID) {
	r.mu.Lock()
	delete(r.items, id)
	r.mu.Unlock()
}

// Get returns the component with id, or nil.
func (r *Registry) Get(id ID) Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id]
}

// Tabs returns the tab container with id, or nil.
func (r *Registry) Tabs(id ID) *TabContainer {
	tc, _ := r.Get(id).(*TabContainer)
	return tc
}

// Destroy destroys the component with id.
func (r *Registry) Destroy(id ID) error {
	c := r.Get(id)
	if c == nil {
		r.log.Warn("destroy: component %d not found", id)
		return ErrNotFound
	}
	c.Destroy()
	return nil
}

// DestroyAll destroys every live component.
func (r *Registry) DestroyAll() int {
	r.mu.Lock()
	items := make([]Component, 0, len(r.items))
	for _, c := range r.items {
		items = append(items, c)
	}
	r.mu.Unlock()

	for _, c := range items {
		c.Destroy()
	}
	return len(items)
}

// Len returns the number of live components.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
