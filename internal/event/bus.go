package event

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dshills/loom/internal/logging"
)

// SubscriptionID identifies a subscription. Zero is never issued.
type SubscriptionID uint64

type subscriber struct {
	id       SubscriptionID
	name     string
	priority int
	types    mask
	handler  Handler
}

// Stats holds bus counters.
type Stats struct {
	Emitted    uint64
	Dropped    uint64
	Rejected   uint64
	Stale      uint64
	Dispatched uint64
	Handled    uint64
	Panics     uint64
	ArenaUsed  int
	ArenaCap   int
}

// Bus allocates events from a per-frame arena and dispatches them to
// subscribers in descending priority.
type Bus struct {
	arenaMu sync.Mutex
	arena   *Arena

	mu     sync.RWMutex
	subs   []*subscriber
	nextID SubscriptionID

	log          *logging.Logger
	panicHandler PanicHandler

	emitted    atomic.Uint64
	dropped    atomic.Uint64
	rejected   atomic.Uint64
	stale      atomic.Uint64
	dispatched atomic.Uint64
	handled    atomic.Uint64
	panics     atomic.Uint64
}

// NewBus creates a bus with the given options.
func NewBus(opts ...BusOption) *Bus {
	cfg := defaultBusConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Bus{
		arena:        NewArena(cfg.arenaBytes),
		log:          logging.OrNop(cfg.logger).WithComponent("event"),
		panicHandler: cfg.panicHandler,
	}
}

// New allocates an event without dispatching it. It returns the zero Ref
// when the type is invalid, the payload does not match, or the arena is
// full; the caller treats that as a dropped emission.
func (b *Bus) New(t Type, p Payload) Ref {
	if !t.Valid() {
		b.rejected.Add(1)
		b.log.Warn("emit dropped: %v (%d)", ErrInvalidType, t)
		return Ref{}
	}
	if !t.Accepts(p) {
		b.rejected.Add(1)
		b.log.Warn("emit %s dropped: %v (%T)", t, ErrPayloadMismatch, p)
		return Ref{}
	}

	b.arenaMu.Lock()
	ref := b.arena.Alloc()
	b.arenaMu.Unlock()

	if ref.Nil() {
		b.dropped.Add(1)
		b.log.Warn("emit %s dropped: %v", t, ErrArenaFull)
		return Ref{}
	}
	ref.ev.Type = t
	ref.ev.Payload = p
	b.emitted.Add(1)
	return ref
}

// Emit allocates an event and dispatches it immediately. It returns the
// handle (zero when dropped) and whether a subscriber consumed it.
func (b *Bus) Emit(t Type, p Payload) (Ref, bool) {
	ref := b.New(t, p)
	if ref.Nil() {
		return Ref{}, false
	}
	return ref, b.dispatch(ref.ev)
}

// Dispatch delivers the event behind ref to matching subscribers in
// priority order. A handle from an earlier frame is rejected and counted
// as stale. Dispatch returns true as soon as a handler returns true or sets
// Handled, and skips every remaining handler. Handlers may call Emit or
// Dispatch.
func (b *Bus) Dispatch(ref Ref) bool {
	ev := b.Get(ref)
	if ev == nil {
		if !ref.Nil() {
			b.stale.Add(1)
			b.log.Warn("dispatch dropped: %v", ErrStaleEvent)
		}
		return false
	}
	return b.dispatch(ev)
}

func (b *Bus) dispatch(ev *Event) bool {
	b.dispatched.Add(1)
	if ev.Handled {
		return true
	}

	for _, s := range b.snapshot() {
		if !s.types.has(ev.Type) {
			continue
		}
		if b.call(s, ev) || ev.Handled {
			ev.Handled = true
			b.handled.Add(1)
			return true
		}
	}
	return false
}

func (b *Bus) call(s *subscriber, ev *Event) (handled bool) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			perr := &PanicError{Subscriber: s.name, Type: ev.Type, Value: r}
			b.log.Error("%v: %v", perr, r)
			if b.panicHandler != nil {
				b.panicHandler(perr)
			}
			handled = false
		}
	}()
	return s.handler(ev)
}

// snapshot copies the subscriber list so handlers can re-enter the bus.
func (b *Bus) snapshot() []*subscriber {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]*subscriber, len(b.subs))
	copy(out, b.subs)
	return out
}

// Subscribe registers handler under name. Higher priority runs first;
// equal priorities run in subscription order. With no types the handler
// receives every event.
func (b *Bus) Subscribe(name string, priority int, handler Handler, types ...Type) (SubscriptionID, error) {
	if handler == nil {
		return 0, ErrNilHandler
	}
	for _, t := range types {
		if !t.Valid() {
			return 0, fmt.Errorf("subscribe %s: %w (%d)", name, ErrInvalidType, t)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	s := &subscriber{
		id:       b.nextID,
		name:     name,
		priority: priority,
		types:    maskOf(types),
		handler:  handler,
	}

	// Copy-on-write keeps snapshots taken by in-flight dispatches intact.
	subs := make([]*subscriber, 0, len(b.subs)+1)
	subs = append(subs, b.subs...)
	subs = append(subs, s)
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].priority > subs[j].priority
	})
	b.subs = subs

	b.log.Debug("subscribed %s (id=%d, priority=%d)", name, s.id, priority)
	return s.id, nil
}

// Unsubscribe removes a subscription.
func (b *Bus) Unsubscribe(id SubscriptionID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			subs := make([]*subscriber, 0, len(b.subs)-1)
			subs = append(subs, b.subs[:i]...)
			subs = append(subs, b.subs[i+1:]...)
			b.subs = subs
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// SubscriberCount returns the number of subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Reset rewinds the frame arena. No event issued before Reset may be read
// afterwards.
func (b *Bus) Reset() {
	b.arenaMu.Lock()
	b.arena.Reset()
	b.arenaMu.Unlock()
}

// Live reports whether ref was allocated by this bus in the current frame.
func (b *Bus) Live(ref Ref) bool {
	b.arenaMu.Lock()
	defer b.arenaMu.Unlock()
	return b.arena.Owns(ref)
}

// Get returns the event behind ref, or nil when ref is dropped, foreign or
// from an earlier frame.
func (b *Bus) Get(ref Ref) *Event {
	b.arenaMu.Lock()
	defer b.arenaMu.Unlock()
	return b.arena.Get(ref)
}

// Stats returns a snapshot of the bus counters.
func (b *Bus) Stats() Stats {
	b.arenaMu.Lock()
	used, capacity := b.arena.Len(), b.arena.Cap()
	b.arenaMu.Unlock()

	return Stats{
		Emitted:    b.emitted.Load(),
		Dropped:    b.dropped.Load(),
		Rejected:   b.rejected.Load(),
		Stale:      b.stale.Load(),
		Dispatched: b.dispatched.Load(),
		Handled:    b.handled.Load(),
		Panics:     b.panics.Load(),
		ArenaUsed:  used,
		ArenaCap:   capacity,
	}
}
