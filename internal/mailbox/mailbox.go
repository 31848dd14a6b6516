// Package mailbox hands values from other goroutines to the UI thread.
package mailbox

import "sync"

// Mailbox is a single-slot, lock-guarded handoff. Posting replaces any
// value not yet taken. The zero value is not usable; call New.
type Mailbox[T any] struct {
	mu     sync.Mutex
	value  T
	full   bool
	notify chan struct{}
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{notify: make(chan struct{}, 1)}
}

// Post stores v and reports whether it replaced an untaken value.
func (m *Mailbox[T]) Post(v T) (replaced bool) {
	m.mu.Lock()
	replaced = m.full
	m.value = v
	m.full = true
	m.mu.Unlock()

	select {
	case m.notify <- struct{}{}:
	default:
	}
	return replaced
}

// Take removes and returns the pending value.
func (m *Mailbox[T]) Take() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if !m.full {
		return zero, false
	}
	v := m.value
	m.value = zero
	m.full = false
	return v, true
}

// Pending reports whether a value is waiting.
func (m *Mailbox[T]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.full
}

// Ready is signaled after every Post. A receive does not take the value.
func (m *Mailbox[T]) Ready() <-chan struct{} {
	return m.notify
}
