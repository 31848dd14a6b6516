// Package event provides the typed event model and the frame-scoped event bus.
//
// Every event carries a Type from a closed enum and a Payload from a closed
// set of variants. Events are allocated from the bus's per-frame Arena and
// become invalid when the main loop calls Reset at the end of the frame.
//
// # Architecture
//
//	emitter ──► Bus.New ──► Arena (fixed slab, generation tagged)
//	               │
//	               ▼
//	         Bus.Dispatch ──► snapshot of subscribers (priority desc)
//	               │
//	   ┌───────────┼───────────┐
//	   ▼           ▼           ▼
//	handler     handler     handler    stops at the first true / Handled
//
// # Lifetime
//
// No code may keep an *Event or its Payload past the frame in which it was
// emitted. Bus.New and Bus.Emit return a Ref that records the frame it was
// allocated in; Bus.Live and Bus.Get report whether it still belongs to the
// current frame, and Bus.Dispatch rejects a stale Ref.
//
// # Consume and propagate
//
// Subscribers are visited in descending priority, insertion order among
// equals. The first handler that returns true or sets Event.Handled stops
// delivery to the rest.
package event
