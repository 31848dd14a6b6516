// Package app wires the kernel together and runs the main loop.
package app

import (
	"errors"
)

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called while the loop is running.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend indicates Run was called without a platform backend.
	ErrNoBackend = errors.New("no backend configured")

	// ErrClosed indicates the application has been shut down.
	ErrClosed = errors.New("application closed")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
