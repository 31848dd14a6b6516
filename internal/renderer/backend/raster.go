package backend

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/ui"
)

// imageFill marks the area of an image element; terminals cannot show
// the image itself.
const imageFill = "░"

// Rasterizer draws layout commands onto a Canvas, honoring scissor
// regions. The zero value is ready to use.
type Rasterizer struct {
	clips []layout.Rect
}

// Draw rasterizes cmds in order.
func (r *Rasterizer) Draw(c Canvas, cmds []layout.Command) {
	w, h := c.Size()
	r.clips = append(r.clips[:0], layout.Rect{Width: w, Height: h})

	for _, cmd := range cmds {
		clip := r.clips[len(r.clips)-1]
		switch cmd.Kind {
		case layout.CommandScissorStart:
			r.clips = append(r.clips, clip.Intersect(cmd.Bounds))
		case layout.CommandScissorEnd:
			if len(r.clips) > 1 {
				r.clips = r.clips[:len(r.clips)-1]
			}
		case layout.CommandRect:
			fillRect(c, cmd.Bounds.Intersect(clip), cmd.Color)
		case layout.CommandText:
			drawText(c, cmd, clip)
		case layout.CommandBorder:
			drawBorder(c, cmd.Bounds, clip, cmd.Color)
		case layout.CommandImage:
			drawImage(c, cmd.Bounds.Intersect(clip), cmd.Color)
		}
	}
}

func fillRect(c Canvas, area layout.Rect, color ui.Color) {
	if color.IsNone() || area.Empty() {
		return
	}
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			c.SetCell(x, y, Cell{Text: " ", Width: 1, Bg: color})
		}
	}
}

// drawText writes each line of the command's text at its own row, aligned
// within the bounds. Text never leaves its bounds; clusters that do not fit
// the visible area entirely are cut.
func drawText(c Canvas, cmd layout.Command, clip layout.Rect) {
	fg := cmd.Color
	if fg.IsNone() {
		fg = ui.DefaultText
	}
	b := cmd.Bounds
	clip = clip.Intersect(b)
	if clip.Empty() {
		return
	}
	for i, line := range strings.Split(cmd.Text, "\n") {
		y := b.Y + i
		if y < clip.Y || y >= clip.Y+clip.Height {
			continue
		}

		x := b.X
		switch lineWidth := uniseg.StringWidth(line); cmd.TextAlign {
		case ui.AlignCenter:
			x += max(b.Width-lineWidth, 0) / 2
		case ui.AlignRight:
			x += max(b.Width-lineWidth, 0)
		}

		g := uniseg.NewGraphemes(line)
		for g.Next() {
			cw := g.Width()
			if cw == 0 {
				continue
			}
			if x >= clip.X && x+cw <= clip.X+clip.Width {
				bg := c.Cell(x, y).Bg
				c.SetCell(x, y, Cell{Text: g.Str(), Width: cw, Fg: fg, Bg: bg})
				for k := 1; k < cw; k++ {
					c.SetCell(x+k, y, Cell{Width: 0, Fg: fg, Bg: bg})
				}
			}
			x += cw
			if x >= clip.X+clip.Width {
				break
			}
		}
	}
}

func drawBorder(c Canvas, b, clip layout.Rect, color ui.Color) {
	if b.Width < 2 || b.Height < 2 {
		return
	}
	if color.IsNone() {
		color = ui.DefaultText
	}
	put := func(x, y int, s string) {
		if !clip.Contains(x, y) {
			return
		}
		bg := c.Cell(x, y).Bg
		c.SetCell(x, y, Cell{Text: s, Width: 1, Fg: color, Bg: bg})
	}
	right, bottom := b.X+b.Width-1, b.Y+b.Height-1
	for x := b.X + 1; x < right; x++ {
		put(x, b.Y, "─")
		put(x, bottom, "─")
	}
	for y := b.Y + 1; y < bottom; y++ {
		put(b.X, y, "│")
		put(right, y, "│")
	}
	put(b.X, b.Y, "┌")
	put(right, b.Y, "┐")
	put(b.X, bottom, "└")
	put(right, bottom, "┘")
}

func drawImage(c Canvas, area layout.Rect, tint ui.Color) {
	if tint.IsNone() {
		tint = ui.DefaultText
	}
	for y := area.Y; y < area.Y+area.Height; y++ {
		for x := area.X; x < area.X+area.Width; x++ {
			bg := c.Cell(x, y).Bg
			c.SetCell(x, y, Cell{Text: imageFill, Width: 1, Fg: tint, Bg: bg})
		}
	}
}
