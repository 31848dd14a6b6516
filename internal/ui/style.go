package ui

// SizingKind tags how a node's width or height is resolved by the layout engine.
type SizingKind uint8

const (
	// SizePercent sizes relative to the parent's content box (Value in 0..1).
	SizePercent SizingKind = iota
	// SizeFixed sizes to Value pixels (cells for terminal backends).
	SizeFixed
	// SizeGrow fills the space left over by siblings.
	SizeGrow
	// SizeFit shrinks to the node's content.
	SizeFit
)

// String returns the sizing kind name.
func (k SizingKind) String() string {
	switch k {
	case SizePercent:
		return "percent"
	case SizeFixed:
		return "fixed"
	case SizeGrow:
		return "grow"
	case SizeFit:
		return "fit"
	default:
		return "unknown"
	}
}

// Sizing is one axis of a node's requested size.
type Sizing struct {
	Kind  SizingKind
	Value float64
}

// Fixed returns a fixed-size sizing.
func Fixed(px float64) Sizing { return Sizing{Kind: SizeFixed, Value: px} }

// Percent returns a percent-of-parent sizing; p is a fraction (1 = 100%).
func Percent(p float64) Sizing { return Sizing{Kind: SizePercent, Value: p} }

// Grow returns a grow-to-fill sizing.
func Grow() Sizing { return Sizing{Kind: SizeGrow} }

// Fit returns a fit-content sizing.
func Fit() Sizing { return Sizing{Kind: SizeFit} }

// Axis is the direction children are laid out in.
type Axis uint8

const (
	// TopToBottom stacks children vertically.
	TopToBottom Axis = iota
	// LeftToRight places children side by side.
	LeftToRight
)

// Padding is the inner spacing of a container.
type Padding struct {
	Left, Right, Top, Bottom int
}

// Uniform returns equal padding on all sides.
func Uniform(p int) Padding {
	return Padding{Left: p, Right: p, Top: p, Bottom: p}
}

// Point is a pixel offset.
type Point struct {
	X, Y int
}

// TextAlign aligns text within its box.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// Cursor is the mouse cursor shape a node asks for while hovered.
type Cursor uint8

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorText
	CursorResizeHorizontal
	CursorResizeVertical
)

// String returns the cursor name.
func (c Cursor) String() string {
	switch c {
	case CursorDefault:
		return "default"
	case CursorPointer:
		return "pointer"
	case CursorText:
		return "text"
	case CursorResizeHorizontal:
		return "resize-h"
	case CursorResizeVertical:
		return "resize-v"
	default:
		return "unknown"
	}
}

// Style holds every attribute the compositor translates into a layout declaration.
type Style struct {
	Width  Sizing
	Height Sizing

	Padding Padding
	Gap     int
	Axis    Axis

	Background Color
	TextColor  Color

	// ClipHorizontal and ClipVertical independently enable scroll clipping.
	ClipHorizontal bool
	ClipVertical   bool

	// Hidden removes the node and its subtree from rendering and hit-testing.
	Hidden bool

	// Floating nodes are layered over normal flow at Offset from their
	// parent's origin.
	Floating bool
	Offset   Point

	FontSize   int
	LineHeight int
	TextAlign  TextAlign

	Cursor Cursor
}

// DefaultStyle returns the style of a freshly created node: 100% x 100%,
// default colors and the default cursor.
func DefaultStyle() Style {
	return Style{
		Width:      Percent(1),
		Height:     Percent(1),
		Axis:       TopToBottom,
		Background: DefaultBackground,
		TextColor:  DefaultText,
		FontSize:   16,
		LineHeight: 20,
		Cursor:     CursorDefault,
	}
}
