package plugin

import "errors"

// Errors for plugin registration.
var (
	// ErrDuplicateID is reported when a plugin id is already registered.
	ErrDuplicateID = errors.New("plugin id already registered")

	// ErrNotFound is reported when no plugin has the requested id.
	ErrNotFound = errors.New("plugin not found")

	// ErrInvalidPlugin is reported for a nil plugin, empty id or nil vtable.
	ErrInvalidPlugin = errors.New("invalid plugin")
)

// PanicError wraps a panic recovered from a plugin callback.
type PanicError struct {
	// Plugin is the id of the plugin that panicked.
	Plugin string

	// Call names the vtable method ("init", "update", "shutdown", "on_event").
	Call string

	// Value is the value passed to panic().
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return "plugin " + e.Plugin + " panicked in " + e.Call
}
