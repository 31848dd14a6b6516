package backend

import (
	"testing"

	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/ui"
)

func TestRasterizer_RectAndText(t *testing.T) {
	g := NewGrid(10, 3)
	var r Rasterizer
	bg := ui.RGB(1, 2, 3)

	r.Draw(g, []layout.Command{
		{Kind: layout.CommandRect, Bounds: layout.Rect{X: 0, Y: 0, Width: 10, Height: 3}, Color: bg},
		{Kind: layout.CommandText, Bounds: layout.Rect{X: 1, Y: 1, Width: 8, Height: 1}, Text: "hi", Color: ui.ColorWhite},
	})

	if g.Line(1) != " hi       " {
		t.Errorf("line = %q", g.Line(1))
	}
	c := g.Cell(1, 1)
	if c.Text != "h" || c.Fg != ui.ColorWhite || c.Bg != bg {
		t.Errorf("text cell = %+v", c)
	}
	if g.Cell(9, 2).Bg != bg {
		t.Error("rect should fill its bounds")
	}
}

func TestRasterizer_TextStaysInBounds(t *testing.T) {
	g := NewGrid(8, 3)
	var r Rasterizer
	r.Draw(g, []layout.Command{
		{Kind: layout.CommandText, Bounds: layout.Rect{X: 1, Y: 0, Width: 3, Height: 1}, Text: "hello\nworld"},
		{Kind: layout.CommandText, Bounds: layout.Rect{X: 0, Y: 2, Width: 3, Height: 1}, Text: "a日b"},
	})

	if g.Line(0) != " hel    " {
		t.Errorf("row 0 = %q", g.Line(0))
	}
	if g.Line(1) != "        " {
		t.Errorf("lines past the bounds must not draw, row 1 = %q", g.Line(1))
	}
	if g.Line(2) != "a日     " {
		t.Errorf("row 2 = %q", g.Line(2))
	}
}

func TestRasterizer_TextAlignAndLines(t *testing.T) {
	tests := []struct {
		align ui.TextAlign
		want  string
	}{
		{ui.AlignLeft, "ab    "},
		{ui.AlignCenter, "  ab  "},
		{ui.AlignRight, "    ab"},
	}
	for _, tt := range tests {
		g := NewGrid(6, 1)
		var r Rasterizer
		r.Draw(g, []layout.Command{
			{Kind: layout.CommandText, Bounds: layout.Rect{Width: 6, Height: 1}, Text: "ab", TextAlign: tt.align},
		})
		if g.Line(0) != tt.want {
			t.Errorf("align %d: %q, want %q", tt.align, g.Line(0), tt.want)
		}
	}

	g := NewGrid(4, 2)
	var r Rasterizer
	r.Draw(g, []layout.Command{
		{Kind: layout.CommandText, Bounds: layout.Rect{Width: 4, Height: 2}, Text: "one\ntwo"},
	})
	if g.String() != "one \ntwo " {
		t.Errorf("multi-line = %q", g.String())
	}
}

func TestRasterizer_WideAndCombining(t *testing.T) {
	g := NewGrid(6, 1)
	var r Rasterizer
	r.Draw(g, []layout.Command{
		{Kind: layout.CommandText, Bounds: layout.Rect{Width: 6, Height: 1}, Text: "日éx"},
	})

	if c := g.Cell(0, 0); c.Text != "日" || c.Width != 2 {
		t.Errorf("wide cell = %+v", c)
	}
	if c := g.Cell(1, 0); c.Width != 0 {
		t.Errorf("continuation cell = %+v", c)
	}
	if c := g.Cell(2, 0); c.Text != "é" || c.Width != 1 {
		t.Errorf("cluster cell = %+v", c)
	}
	if g.Cell(3, 0).Text != "x" {
		t.Errorf("cell 3 = %+v", g.Cell(3, 0))
	}
}

func TestRasterizer_Scissor(t *testing.T) {
	g := NewGrid(10, 3)
	var r Rasterizer
	red := ui.RGB(255, 0, 0)

	r.Draw(g, []layout.Command{
		{Kind: layout.CommandScissorStart, Bounds: layout.Rect{X: 2, Y: 0, Width: 3, Height: 2}},
		{Kind: layout.CommandRect, Bounds: layout.Rect{X: 0, Y: 0, Width: 10, Height: 3}, Color: red},
		{Kind: layout.CommandText, Bounds: layout.Rect{X: 0, Y: 1, Width: 10, Height: 1}, Text: "abcdefg"},
		{Kind: layout.CommandScissorEnd},
		{Kind: layout.CommandText, Bounds: layout.Rect{X: 0, Y: 2, Width: 10, Height: 1}, Text: "free"},
	})

	if !g.Cell(1, 0).Bg.IsNone() || g.Cell(2, 0).Bg != red || g.Cell(4, 1).Bg != red || !g.Cell(5, 1).Bg.IsNone() {
		t.Error("rect should be clipped to the scissor")
	}
	if g.Line(1) != "  cde     " {
		t.Errorf("clipped text = %q", g.Line(1))
	}
	if g.Line(2) != "free      " {
		t.Errorf("text after scissor end = %q", g.Line(2))
	}
}

func TestRasterizer_NestedScissorAndWideCut(t *testing.T) {
	g := NewGrid(8, 1)
	var r Rasterizer
	r.Draw(g, []layout.Command{
		{Kind: layout.CommandScissorStart, Bounds: layout.Rect{X: 0, Y: 0, Width: 6, Height: 1}},
		{Kind: layout.CommandScissorStart, Bounds: layout.Rect{X: 0, Y: 0, Width: 3, Height: 1}},
		{Kind: layout.CommandText, Bounds: layout.Rect{Width: 8, Height: 1}, Text: "日本"},
		{Kind: layout.CommandScissorEnd},
		{Kind: layout.CommandScissorEnd},
		// Unbalanced end is ignored.
		{Kind: layout.CommandScissorEnd},
	})
	if c := g.Cell(2, 0); c.Text != " " {
		t.Errorf("wide cluster crossing the clip should be cut, got %+v", c)
	}
	if g.Cell(0, 0).Text != "日" {
		t.Error("first cluster fits")
	}
}

func TestRasterizer_BorderAndImage(t *testing.T) {
	g := NewGrid(4, 3)
	var r Rasterizer
	r.Draw(g, []layout.Command{
		{Kind: layout.CommandImage, Bounds: layout.Rect{X: 1, Y: 1, Width: 2, Height: 1}},
		{Kind: layout.CommandBorder, Bounds: layout.Rect{Width: 4, Height: 3}},
	})
	want := "┌──┐\n│░░│\n└──┘"
	if g.String() != want {
		t.Errorf("got\n%s\nwant\n%s", g.String(), want)
	}
}

func TestGrid_Resize(t *testing.T) {
	g := NewGrid(3, 2)
	g.SetCell(1, 1, Cell{Text: "x", Width: 1})
	g.SetCell(7, 7, Cell{Text: "y", Width: 1})

	g.Resize(5, 3)
	if w, h := g.Size(); w != 5 || h != 3 {
		t.Fatalf("size = %dx%d", w, h)
	}
	if g.Cell(1, 1).Text != "x" {
		t.Error("resize should preserve content")
	}
	g.Resize(1, 1)
	if g.Cell(1, 1).Text != " " {
		t.Error("out of range reads return empty cells")
	}
}
