// Package backend provides the platform layer: a surface that draws layout
// commands, reports the viewport size and delivers input as typed events.
package backend

import (
	"errors"

	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/ui"
)

// ErrClosed is returned by PollInput after Shutdown or Interrupt.
var ErrClosed = errors.New("backend closed")

// Input is one translated platform event.
type Input struct {
	Type    event.Type
	Payload event.Payload
}

// Backend defines the interface for display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current viewport dimensions in cells.
	Size() (width, height int)

	// Render draws one frame of commands and presents it.
	Render(cmds []layout.Command)

	// SetCursor changes the pointer shape where the platform allows it.
	SetCursor(c ui.Cursor)

	// PollInput blocks until platform input is available. Some platform
	// events translate to several inputs (a button press and a move) or
	// none; the returned slice may be empty. Returns ErrClosed once the
	// backend is shut down or interrupted.
	PollInput() ([]Input, error)

	// Interrupt wakes a blocked PollInput, which then returns ErrClosed.
	Interrupt()
}
