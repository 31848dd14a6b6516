package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrNoFunction is returned when a global function is not defined.
	ErrNoFunction = errors.New("lua function not defined")

	// ErrNotLoaded is returned when the script chunk has not been run.
	ErrNotLoaded = errors.New("lua script not loaded")
)

// ScriptError describes a failure inside a plugin script.
type ScriptError struct {
	// Plugin is the plugin id.
	Plugin string

	// Func is the script function that failed, or "chunk" for top-level code.
	Func string

	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("lua plugin %s: %s: %v", e.Plugin, e.Func, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
