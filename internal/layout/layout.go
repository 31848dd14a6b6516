// Package layout defines the boundary between the compositor and a layout
// engine.
//
// Each frame the compositor calls Begin, declares the visible tree with
// matching Open/Close pairs, and calls End to receive a flat list of draw
// commands in absolute coordinates. After End the engine answers pointer
// and bounds queries against the layout it just produced.
package layout

import "github.com/dshills/loom/internal/ui"

// Rect is an axis-aligned rectangle in engine units.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersect returns the overlap of r and o.
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.Width, o.X+o.Width), min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ElementKind is the kind of a declared element.
type ElementKind uint8

const (
	ElementContainer ElementKind = iota
	ElementText
	ElementImage
)

// Declaration describes one element to the engine.
type Declaration struct {
	ID   string
	Kind ElementKind

	Width, Height ui.Sizing
	Padding       ui.Padding
	Gap           int
	Axis          ui.Axis
	Background    ui.Color

	ClipHorizontal bool
	ClipVertical   bool

	Floating bool
	Offset   ui.Point

	// Text elements.
	Text       string
	TextColor  ui.Color
	FontSize   int
	LineHeight int
	TextAlign  ui.TextAlign

	// Image elements.
	Image any
}

// CommandKind is the kind of a draw command.
type CommandKind uint8

const (
	CommandRect CommandKind = iota
	CommandText
	CommandImage
	CommandBorder
	CommandScissorStart
	CommandScissorEnd
)

// String returns the command kind name.
func (k CommandKind) String() string {
	switch k {
	case CommandRect:
		return "rect"
	case CommandText:
		return "text"
	case CommandImage:
		return "image"
	case CommandBorder:
		return "border"
	case CommandScissorStart:
		return "scissor-start"
	case CommandScissorEnd:
		return "scissor-end"
	default:
		return "unknown"
	}
}

// Command is a single draw instruction in absolute coordinates.
type Command struct {
	Kind   CommandKind
	ID     string
	Bounds Rect
	Color  ui.Color

	Text      string
	TextAlign ui.TextAlign
	Image     any
}

// Engine lays out declared elements and answers hit-testing queries.
type Engine interface {
	// Begin starts a frame for a viewport of the given size.
	Begin(width, height int)

	// SetPointer records the pointer state used by PointerOver.
	SetPointer(x, y int, down bool)

	// Open declares an element. Elements opened before the matching Close
	// are its children.
	Open(d Declaration)

	// Close ends the most recently opened element.
	Close()

	// End lays out the frame and returns its draw commands.
	End() []Command

	// PointerOver reports whether the pointer is over the element with id
	// in the layout produced by the last End.
	PointerOver(id string) bool

	// Bounds returns the rectangle of the element with id from the last End.
	Bounds(id string) (Rect, bool)
}
