package event

import "errors"

// Sentinel errors for the event bus.
var (
	// ErrArenaFull is reported when the frame arena has no room left.
	ErrArenaFull = errors.New("event arena is full")

	// ErrPayloadMismatch is reported when a payload variant does not belong to the event type.
	ErrPayloadMismatch = errors.New("payload does not match event type")

	// ErrStaleEvent is reported when a handle from an earlier frame is dispatched.
	ErrStaleEvent = errors.New("event handle is from an earlier frame")

	// ErrInvalidType is reported for TypeNone or out-of-range types.
	ErrInvalidType = errors.New("invalid event type")

	// ErrNilHandler is returned when a nil handler is provided.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrSubscriptionNotFound is returned when unsubscribing an unknown id.
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// PanicError wraps a panic recovered from a handler.
type PanicError struct {
	// Subscriber is the name the handler was subscribed under.
	Subscriber string

	// Type is the event type being dispatched.
	Type Type

	// Value is the value passed to panic().
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return "handler panic in " + e.Subscriber + " on " + e.Type.String()
}
