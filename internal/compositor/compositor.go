// Package compositor turns the UI tree into one frame.
//
// Frame walks the visible tree into layout declarations, takes the draw
// commands back from the layout engine, applies hover highlighting, hands
// the commands to the renderer, and then resolves click and cursor against
// the layout it just produced.
package compositor

import (
	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/logging"
	"github.com/dshills/loom/internal/ui"
)

// DefaultHoverLighten is the HSL lightness added to hovered clickable containers.
const DefaultHoverLighten = 0.08

// Renderer draws commands and shows the mouse cursor.
type Renderer interface {
	Render(cmds []layout.Command)
	SetCursor(c ui.Cursor)
}

// Input is the pointer state for one frame.
type Input struct {
	Width, Height int

	PointerX, PointerY int
	PointerDown        bool

	// Pressed is set when the frame was triggered by a button press; the
	// deepest clickable node under the pointer is clicked after layout.
	Pressed bool
}

// Result describes what a frame did.
type Result struct {
	Commands int

	// Clicked is the node whose click handler ran, if any.
	Clicked *ui.Node

	// Hovered is the deepest node under the pointer, if any.
	Hovered *ui.Node

	Cursor ui.Cursor
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithHoverLighten sets the hover lightness delta. Zero disables hover.
func WithHoverLighten(amount float64) Option {
	return func(c *Compositor) {
		c.hover = amount
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Compositor) {
		c.log = logging.OrNop(l).WithComponent("compositor")
	}
}

// Compositor runs the per-frame pass.
type Compositor struct {
	engine   layout.Engine
	renderer Renderer
	hover    float64
	log      *logging.Logger

	// clickable containers declared this frame, by id
	clickable map[string]*ui.Node

	frames uint64
}

// New creates a compositor over engine and renderer.
func New(engine layout.Engine, renderer Renderer, opts ...Option) *Compositor {
	c := &Compositor{
		engine:    engine,
		renderer:  renderer,
		hover:     DefaultHoverLighten,
		log:       logging.Nop(),
		clickable: make(map[string]*ui.Node),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetRenderer replaces the renderer. A nil renderer lays out frames
// without drawing them.
func (c *Compositor) SetRenderer(r Renderer) {
	c.renderer = r
}

// SetHoverLighten changes the hover lightness delta.
func (c *Compositor) SetHoverLighten(amount float64) {
	c.hover = amount
}

// Frame produces one frame from root.
func (c *Compositor) Frame(root *ui.Node, in Input) Result {
	c.frames++
	clear(c.clickable)

	c.engine.Begin(in.Width, in.Height)
	c.engine.SetPointer(in.PointerX, in.PointerY, in.PointerDown)
	c.declare(root)
	cmds := c.engine.End()

	// Hover depends on this frame's layout, so it is applied to the
	// commands rather than the declarations.
	if c.hover != 0 {
		for i := range cmds {
			cmd := &cmds[i]
			if cmd.Kind != layout.CommandRect {
				continue
			}
			if _, ok := c.clickable[cmd.ID]; ok && c.engine.PointerOver(cmd.ID) {
				cmd.Color = cmd.Color.Lighten(c.hover)
			}
		}
	}

	if c.renderer != nil {
		c.renderer.Render(cmds)
	}

	res := Result{Commands: len(cmds)}

	if in.Pressed {
		if target := c.deepest(root, func(n *ui.Node) bool { return n.Clickable() }); target != nil {
			c.log.Debug("click %s", target.ID)
			target.Click()
			res.Clicked = target
		}
	}

	res.Hovered = c.deepest(root, nil)
	if n := c.deepest(root, func(n *ui.Node) bool { return n.Style.Cursor != ui.CursorDefault }); n != nil {
		res.Cursor = n.Style.Cursor
	}
	if c.renderer != nil {
		c.renderer.SetCursor(res.Cursor)
	}
	return res
}

// Frames returns the number of frames produced.
func (c *Compositor) Frames() uint64 {
	return c.frames
}

// Bounds returns the laid-out bounds of id from the last frame.
func (c *Compositor) Bounds(id string) (layout.Rect, bool) {
	return c.engine.Bounds(id)
}

// declare emits the visible subtree rooted at n.
func (c *Compositor) declare(n *ui.Node) {
	if n == nil || n.Style.Hidden {
		return
	}
	c.engine.Open(Declaration(n))
	if n.Kind == ui.KindContainer && n.Clickable() && n.ID != "" {
		c.clickable[n.ID] = n
	}
	for _, child := range n.Children() {
		c.declare(child)
	}
	c.engine.Close()
}

// deepest returns the deepest visible node under the pointer that
// satisfies match (any node when match is nil). Children are searched
// before their parent, and the first child subtree with a match wins.
func (c *Compositor) deepest(n *ui.Node, match func(*ui.Node) bool) *ui.Node {
	if n == nil || n.Style.Hidden {
		return nil
	}
	for _, child := range n.Children() {
		if found := c.deepest(child, match); found != nil {
			return found
		}
	}
	if n.ID != "" && (match == nil || match(n)) && c.engine.PointerOver(n.ID) {
		return n
	}
	return nil
}

// Declaration translates a node into a layout declaration.
func Declaration(n *ui.Node) layout.Declaration {
	s := n.Style
	d := layout.Declaration{
		ID:             n.ID,
		Width:          s.Width,
		Height:         s.Height,
		Padding:        s.Padding,
		Gap:            s.Gap,
		Axis:           s.Axis,
		Background:     s.Background,
		ClipHorizontal: s.ClipHorizontal,
		ClipVertical:   s.ClipVertical,
		Floating:       s.Floating,
		Offset:         s.Offset,
	}
	switch n.Kind {
	case ui.KindText:
		d.Kind = layout.ElementText
		d.Text = n.Text
		d.TextColor = s.TextColor
		d.FontSize = s.FontSize
		d.LineHeight = s.LineHeight
		d.TextAlign = s.TextAlign
	case ui.KindImage:
		d.Kind = layout.ElementImage
		d.Image = n.Image
	default:
		d.Kind = layout.ElementContainer
	}
	return d
}
