package backend

import (
	"sync"

	"github.com/dshills/loom/internal/event"
	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/ui"
)

// NullBackend is an in-memory backend for testing. Input is scripted with
// Post, and frames are rasterized into a Grid.
type NullBackend struct {
	mu       sync.Mutex
	width    int
	height   int
	grid     *Grid
	raster   Rasterizer
	commands []layout.Command
	frames   int
	cursor   ui.Cursor

	events    chan []Input
	done      chan struct{}
	closeOnce sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		grid:   NewGrid(width, height),
		events: make(chan []Input, 100),
		done:   make(chan struct{}),
	}
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() { b.Interrupt() }

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) Render(cmds []layout.Command) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.grid.Resize(b.width, b.height)
	b.grid.Clear()
	b.raster.Draw(b.grid, cmds)
	b.commands = append(b.commands[:0], cmds...)
	b.frames++
}

func (b *NullBackend) SetCursor(c ui.Cursor) {
	b.mu.Lock()
	b.cursor = c
	b.mu.Unlock()
}

func (b *NullBackend) PollInput() ([]Input, error) {
	select {
	case in := <-b.events:
		return in, nil
	case <-b.done:
		return nil, ErrClosed
	}
}

func (b *NullBackend) Interrupt() {
	b.closeOnce.Do(func() { close(b.done) })
}

// Post queues inputs to be returned together by one PollInput. Inputs
// posted after the queue fills are dropped.
func (b *NullBackend) Post(in ...Input) {
	select {
	case b.events <- in:
	default:
	}
}

// Resize changes the size and posts the matching WindowResize input.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.mu.Unlock()
	b.Post(Input{Type: event.WindowResize, Payload: event.Resize{Width: width, Height: height}})
}

// Frames returns the number of rendered frames.
func (b *NullBackend) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// Commands returns a copy of the last frame's commands.
func (b *NullBackend) Commands() []layout.Command {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]layout.Command(nil), b.commands...)
}

// Cursor returns the last cursor set.
func (b *NullBackend) Cursor() ui.Cursor {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor
}

// Screen returns the text of the last frame, one line per row.
func (b *NullBackend) Screen() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grid.String()
}

// CellAt returns a cell of the last frame.
func (b *NullBackend) CellAt(x, y int) Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.grid.Cell(x, y)
}
