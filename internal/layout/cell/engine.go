// Package cell is a layout engine for character-cell displays.
//
// It lays elements out along their axis with fixed, percent, grow and fit
// sizing, padding and gaps, turns clip flags into scissor commands, and
// places floating elements at an offset from their parent. Text is measured
// in terminal cells.
package cell

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/ui"
)

type element struct {
	decl     layout.Declaration
	children []*element

	// measured fit size, padding included
	fitW, fitH int

	bounds  layout.Rect
	visible layout.Rect
}

// Engine is a layout.Engine over a grid of cells.
type Engine struct {
	width, height int

	root  *element
	stack []*element

	pointerX, pointerY int
	pointerDown        bool

	byID map[string]*element
}

// New creates an engine.
func New() *Engine {
	return &Engine{byID: make(map[string]*element)}
}

// Begin starts a frame for a width x height cell viewport.
func (e *Engine) Begin(width, height int) {
	e.width, e.height = width, height
	e.root = &element{decl: layout.Declaration{
		ID:     "",
		Width:  ui.Fixed(float64(width)),
		Height: ui.Fixed(float64(height)),
	}}
	e.stack = append(e.stack[:0], e.root)
}

// SetPointer records the pointer cell.
func (e *Engine) SetPointer(x, y int, down bool) {
	e.pointerX, e.pointerY, e.pointerDown = x, y, down
}

// Open declares an element under the current one.
func (e *Engine) Open(d layout.Declaration) {
	if len(e.stack) == 0 {
		return
	}
	el := &element{decl: d}
	parent := e.stack[len(e.stack)-1]
	parent.children = append(parent.children, el)
	e.stack = append(e.stack, el)
}

// Close ends the current element. Closing the implicit root is ignored.
func (e *Engine) Close() {
	if len(e.stack) > 1 {
		e.stack = e.stack[:len(e.stack)-1]
	}
}

// End lays out the frame and returns its draw commands.
func (e *Engine) End() []layout.Command {
	if e.root == nil {
		return nil
	}
	clear(e.byID)

	measure(e.root)
	viewport := layout.Rect{Width: e.width, Height: e.height}
	e.root.bounds = viewport
	e.root.visible = viewport
	e.place(e.root, viewport)

	var cmds []layout.Command
	for _, c := range e.root.children {
		cmds = e.emit(c, cmds)
	}
	e.stack = e.stack[:0]
	return cmds
}

// PointerOver reports whether the pointer is inside the visible part of id.
func (e *Engine) PointerOver(id string) bool {
	el, ok := e.byID[id]
	if !ok {
		return false
	}
	return el.visible.Contains(e.pointerX, e.pointerY)
}

// Bounds returns the laid-out rectangle of id.
func (e *Engine) Bounds(id string) (layout.Rect, bool) {
	el, ok := e.byID[id]
	if !ok {
		return layout.Rect{}, false
	}
	return el.bounds, true
}

// Pointer returns the last pointer state.
func (e *Engine) Pointer() (x, y int, down bool) {
	return e.pointerX, e.pointerY, e.pointerDown
}

// measure computes fit sizes bottom-up.
func measure(el *element) {
	d := &el.decl
	if d.Kind == layout.ElementText {
		w, h := TextSize(d.Text)
		el.fitW = w + d.Padding.Left + d.Padding.Right
		el.fitH = h + d.Padding.Top + d.Padding.Bottom
		return
	}

	var main, cross, n int
	for _, c := range el.children {
		measure(c)
		if c.decl.Floating {
			continue
		}
		cw, ch := c.fitW, c.fitH
		if fw, ok := fixedSize(c.decl.Width); ok {
			cw = fw
		}
		if fh, ok := fixedSize(c.decl.Height); ok {
			ch = fh
		}
		if d.Axis == ui.LeftToRight {
			main += cw
			cross = max(cross, ch)
		} else {
			main += ch
			cross = max(cross, cw)
		}
		n++
	}
	if n > 1 {
		main += d.Gap * (n - 1)
	}
	if d.Axis == ui.LeftToRight {
		el.fitW, el.fitH = main, cross
	} else {
		el.fitW, el.fitH = cross, main
	}
	el.fitW += d.Padding.Left + d.Padding.Right
	el.fitH += d.Padding.Top + d.Padding.Bottom
}

func fixedSize(s ui.Sizing) (int, bool) {
	if s.Kind == ui.SizeFixed {
		return int(s.Value), true
	}
	return 0, false
}

// resolve sizes one axis of a child against the parent's content extent.
// Grow returns -1 and is settled by the caller.
func resolve(s ui.Sizing, fit, avail int) int {
	switch s.Kind {
	case ui.SizeFixed:
		return int(s.Value)
	case ui.SizePercent:
		return int(s.Value * float64(avail))
	case ui.SizeFit:
		return fit
	default:
		return -1
	}
}

// place positions the children of el inside its content box.
func (e *Engine) place(el *element, clip layout.Rect) {
	if el.decl.ID != "" {
		e.byID[el.decl.ID] = el
	}
	d := &el.decl
	content := layout.Rect{
		X:      el.bounds.X + d.Padding.Left,
		Y:      el.bounds.Y + d.Padding.Top,
		Width:  max(0, el.bounds.Width-d.Padding.Left-d.Padding.Right),
		Height: max(0, el.bounds.Height-d.Padding.Top-d.Padding.Bottom),
	}

	childClip := clip
	if d.ClipHorizontal {
		childClip = childClip.Intersect(layout.Rect{X: el.bounds.X, Y: clip.Y, Width: el.bounds.Width, Height: clip.Height})
	}
	if d.ClipVertical {
		childClip = childClip.Intersect(layout.Rect{X: clip.X, Y: el.bounds.Y, Width: clip.Width, Height: el.bounds.Height})
	}

	horizontal := d.Axis == ui.LeftToRight
	mainAvail, crossAvail := content.Height, content.Width
	if horizontal {
		mainAvail, crossAvail = content.Width, content.Height
	}

	type slot struct{ main, cross int }
	slots := make([]slot, len(el.children))
	used, growers, flow := 0, 0, 0
	for i, c := range el.children {
		if c.decl.Floating {
			continue
		}
		w := resolve(c.decl.Width, c.fitW, content.Width)
		h := resolve(c.decl.Height, c.fitH, content.Height)
		if horizontal {
			slots[i] = slot{main: w, cross: h}
		} else {
			slots[i] = slot{main: h, cross: w}
		}
		if slots[i].main < 0 {
			growers++
		} else {
			used += slots[i].main
		}
		flow++
	}
	if flow > 1 {
		used += d.Gap * (flow - 1)
	}

	share, extra := 0, 0
	if growers > 0 {
		free := max(0, mainAvail-used)
		share, extra = free/growers, free%growers
	}

	cursor := 0
	for i, c := range el.children {
		if c.decl.Floating {
			w := resolve(c.decl.Width, c.fitW, content.Width)
			h := resolve(c.decl.Height, c.fitH, content.Height)
			if w < 0 {
				w = content.Width
			}
			if h < 0 {
				h = content.Height
			}
			c.bounds = layout.Rect{X: content.X + c.decl.Offset.X, Y: content.Y + c.decl.Offset.Y, Width: w, Height: h}
			c.visible = c.bounds.Intersect(clip)
			e.place(c, clip)
			continue
		}

		s := slots[i]
		if s.main < 0 {
			s.main = share
			if extra > 0 {
				s.main++
				extra--
			}
		}
		if s.cross < 0 {
			s.cross = crossAvail
		}
		if horizontal {
			c.bounds = layout.Rect{X: content.X + cursor, Y: content.Y, Width: s.main, Height: s.cross}
		} else {
			c.bounds = layout.Rect{X: content.X, Y: content.Y + cursor, Width: s.cross, Height: s.main}
		}
		cursor += s.main + d.Gap
		c.visible = c.bounds.Intersect(childClip)
		e.place(c, childClip)
	}
}

// emit appends the commands for el and its subtree. Floating children are
// emitted after their flow siblings so they draw on top.
func (e *Engine) emit(el *element, cmds []layout.Command) []layout.Command {
	d := &el.decl
	switch d.Kind {
	case layout.ElementText:
		if !d.Background.IsNone() {
			cmds = append(cmds, layout.Command{Kind: layout.CommandRect, ID: d.ID, Bounds: el.bounds, Color: d.Background})
		}
		cmds = append(cmds, layout.Command{
			Kind:      layout.CommandText,
			ID:        d.ID,
			Bounds:    el.bounds,
			Color:     d.TextColor,
			Text:      d.Text,
			TextAlign: d.TextAlign,
		})
		return cmds
	case layout.ElementImage:
		return append(cmds, layout.Command{Kind: layout.CommandImage, ID: d.ID, Bounds: el.bounds, Image: d.Image})
	}

	if !d.Background.IsNone() {
		cmds = append(cmds, layout.Command{Kind: layout.CommandRect, ID: d.ID, Bounds: el.bounds, Color: d.Background})
	}

	clips := d.ClipHorizontal || d.ClipVertical
	if clips {
		cmds = append(cmds, layout.Command{Kind: layout.CommandScissorStart, ID: d.ID, Bounds: el.bounds})
	}
	for _, c := range el.children {
		if !c.decl.Floating {
			cmds = e.emit(c, cmds)
		}
	}
	if clips {
		cmds = append(cmds, layout.Command{Kind: layout.CommandScissorEnd, ID: d.ID, Bounds: el.bounds})
	}
	for _, c := range el.children {
		if c.decl.Floating {
			cmds = e.emit(c, cmds)
		}
	}
	return cmds
}

// TextSize returns the width of the widest line and the number of lines,
// in cells. Widths are grapheme-cluster widths, the same the terminal
// rasterizer draws with.
func TextSize(s string) (width, lines int) {
	if s == "" {
		return 0, 1
	}
	for _, line := range strings.Split(s, "\n") {
		width = max(width, uniseg.StringWidth(line))
		lines++
	}
	return width, lines
}
