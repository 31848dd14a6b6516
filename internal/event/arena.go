package event

import "unsafe"

// DefaultArenaBytes is the default backing size of a frame arena.
const DefaultArenaBytes = 64 * 1024

// eventSize is the slab cost of one event.
const eventSize = int(unsafe.Sizeof(Event{}))

// Arena is a bump allocator for events over a fixed slab. It is reclaimed
// in bulk by Reset. Arena is not safe for concurrent use; the Bus guards it.
type Arena struct {
	slab []Event
	used int
	gen  uint32
}

// NewArena creates an arena holding as many events as fit in bytes.
func NewArena(bytes int) *Arena {
	n := bytes / eventSize
	if n < 1 {
		n = 1
	}
	return &Arena{slab: make([]Event, n), gen: 1}
}

// Alloc returns a handle to a zeroed event, or the zero Ref when the
// arena is full.
func (a *Arena) Alloc() Ref {
	if a.used >= len(a.slab) {
		return Ref{}
	}
	ev := &a.slab[a.used]
	a.used++
	*ev = Event{}
	return Ref{ev: ev, gen: a.gen}
}

// Reset rewinds the arena. Every event allocated before Reset is invalid.
func (a *Arena) Reset() {
	clear(a.slab[:a.used])
	a.used = 0
	a.gen++
	if a.gen == 0 {
		a.gen = 1
	}
}

// Owns reports whether r was allocated from this arena in the current
// generation. A handle kept across Reset is stale even when its slot has
// been handed out again.
func (a *Arena) Owns(r Ref) bool {
	if r.ev == nil || a.used == 0 || r.gen != a.gen {
		return false
	}
	first := uintptr(unsafe.Pointer(&a.slab[0]))
	p := uintptr(unsafe.Pointer(r.ev))
	return p >= first && p < first+uintptr(a.used*eventSize)
}

// Get returns the event behind r, or nil when r is not owned.
func (a *Arena) Get(r Ref) *Event {
	if !a.Owns(r) {
		return nil
	}
	return r.ev
}

// Len returns the number of events allocated this generation.
func (a *Arena) Len() int { return a.used }

// Cap returns the number of events the arena can hold.
func (a *Arena) Cap() int { return len(a.slab) }

// Generation returns the current generation.
func (a *Arena) Generation() uint32 { return a.gen }
