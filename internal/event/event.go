package event

import "fmt"

// Event is a typed event allocated from a Bus arena.
type Event struct {
	Type    Type
	Handled bool
	Payload Payload
}

// Ref is a frame-scoped handle to an arena event. It carries the arena
// generation of its allocation, so the Bus can tell a handle kept past
// Reset from the event that now occupies its slot. The zero Ref is a
// dropped emission.
type Ref struct {
	ev  *Event
	gen uint32
}

// Nil reports whether the emission was dropped.
func (r Ref) Nil() bool { return r.ev == nil }

// String returns a short description for logs.
func (e *Event) String() string {
	if e == nil {
		return "<nil event>"
	}
	return fmt.Sprintf("%s%+v", e.Type, e.Payload)
}

// SignalName returns the signal name for Signal events.
func (e *Event) SignalName() (string, bool) {
	if e == nil {
		return "", false
	}
	p, ok := e.Payload.(SignalPayload)
	return p.Name, ok
}

// Handler receives a dispatched event. Returning true consumes it.
type Handler func(ev *Event) bool
