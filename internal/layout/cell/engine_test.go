package cell

import (
	"testing"

	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/ui"
)

func container(id string, w, h ui.Sizing) layout.Declaration {
	return layout.Declaration{ID: id, Width: w, Height: h, Background: ui.ColorNone}
}

func TestEngine_ColumnWithGrow(t *testing.T) {
	e := New()
	e.Begin(40, 20)

	root := container("root", ui.Percent(1), ui.Percent(1))
	e.Open(root)
	e.Open(container("header", ui.Grow(), ui.Fixed(3)))
	e.Close()
	e.Open(container("body", ui.Grow(), ui.Grow()))
	e.Close()
	e.Close()
	e.End()

	tests := []struct {
		id   string
		want layout.Rect
	}{
		{"root", layout.Rect{X: 0, Y: 0, Width: 40, Height: 20}},
		{"header", layout.Rect{X: 0, Y: 0, Width: 40, Height: 3}},
		{"body", layout.Rect{X: 0, Y: 3, Width: 40, Height: 17}},
	}
	for _, tt := range tests {
		got, ok := e.Bounds(tt.id)
		if !ok {
			t.Errorf("%s: no bounds", tt.id)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: bounds = %+v, want %+v", tt.id, got, tt.want)
		}
	}
}

func TestEngine_RowWithPaddingGapAndPercent(t *testing.T) {
	e := New()
	e.Begin(50, 10)

	row := container("row", ui.Fixed(42), ui.Fixed(6))
	row.Axis = ui.LeftToRight
	row.Padding = ui.Uniform(1)
	row.Gap = 2
	e.Open(row)
	e.Open(container("left", ui.Percent(0.5), ui.Grow()))
	e.Close()
	e.Open(container("right", ui.Grow(), ui.Grow()))
	e.Close()
	e.Close()
	e.End()

	left, _ := e.Bounds("left")
	right, _ := e.Bounds("right")

	if left != (layout.Rect{X: 1, Y: 1, Width: 20, Height: 4}) {
		t.Errorf("left = %+v", left)
	}
	if right != (layout.Rect{X: 23, Y: 1, Width: 18, Height: 4}) {
		t.Errorf("right = %+v", right)
	}
}

func TestEngine_FitText(t *testing.T) {
	e := New()
	e.Begin(80, 24)

	box := container("box", ui.Fit(), ui.Fit())
	box.Padding = ui.Padding{Left: 1, Right: 1}
	e.Open(box)
	e.Open(layout.Declaration{ID: "label", Kind: layout.ElementText, Text: "héllo\n世界", Width: ui.Fit(), Height: ui.Fit()})
	e.Close()
	e.Close()
	cmds := e.End()

	label, _ := e.Bounds("label")
	if label.Width != 5 || label.Height != 2 {
		t.Errorf("label = %+v, want 5x2 cells", label)
	}
	b, _ := e.Bounds("box")
	if b.Width != 7 || b.Height != 2 {
		t.Errorf("box = %+v, want 7x2", b)
	}
	if len(cmds) != 1 || cmds[0].Kind != layout.CommandText {
		t.Errorf("expected a single text command, got %+v", cmds)
	}
}

func TestEngine_ClipAndPointer(t *testing.T) {
	e := New()
	e.Begin(20, 10)

	viewport := container("viewport", ui.Fixed(10), ui.Fixed(4))
	viewport.ClipVertical = true
	viewport.Background = ui.RGB(10, 10, 10)
	e.Open(viewport)
	e.Open(container("tall", ui.Grow(), ui.Fixed(8)))
	e.Close()
	e.Close()

	e.SetPointer(2, 6, false)
	cmds := e.End()

	kinds := make([]layout.CommandKind, len(cmds))
	for i, c := range cmds {
		kinds[i] = c.Kind
	}
	want := []layout.CommandKind{layout.CommandRect, layout.CommandScissorStart, layout.CommandScissorEnd}
	if len(kinds) != len(want) {
		t.Fatalf("commands = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("cmd[%d] = %v, want %v", i, kinds[i], want[i])
		}
	}

	if e.PointerOver("tall") {
		t.Error("pointer below the clip rect must not hit the clipped child")
	}
	e.SetPointer(2, 2, false)
	if !e.PointerOver("tall") || !e.PointerOver("viewport") {
		t.Error("pointer inside the viewport should hit both")
	}
	if e.PointerOver("missing") {
		t.Error("unknown ids are never hit")
	}
}

func TestEngine_FloatingDrawsLast(t *testing.T) {
	e := New()
	e.Begin(20, 10)

	e.Open(container("root", ui.Percent(1), ui.Percent(1)))
	caret := container("caret", ui.Fixed(1), ui.Fixed(1))
	caret.Floating = true
	caret.Offset = ui.Point{X: 4, Y: 2}
	caret.Background = ui.ColorWhite
	e.Open(caret)
	e.Close()
	line := container("line", ui.Grow(), ui.Fixed(1))
	line.Background = ui.ColorBlack
	e.Open(line)
	e.Close()
	e.Close()
	cmds := e.End()

	if len(cmds) != 2 || cmds[0].ID != "line" || cmds[1].ID != "caret" {
		t.Fatalf("floating element should draw after flow siblings: %+v", cmds)
	}
	b, _ := e.Bounds("caret")
	if b.X != 4 || b.Y != 2 {
		t.Errorf("caret = %+v", b)
	}
	lb, _ := e.Bounds("line")
	if lb.Y != 0 {
		t.Error("floating elements do not take space in the flow")
	}
}

func TestTextSize(t *testing.T) {
	tests := []struct {
		in           string
		width, lines int
	}{
		{"", 0, 1},
		{"abc", 3, 1},
		{"ab\nabcd", 4, 2},
		{"日本", 4, 1},
		{"👩\u200d💻", 2, 1},
		{"🇯🇵!", 3, 1},
	}
	for _, tt := range tests {
		w, l := TextSize(tt.in)
		if w != tt.width || l != tt.lines {
			t.Errorf("TextSize(%q) = %d,%d want %d,%d", tt.in, w, l, tt.width, tt.lines)
		}
	}
}
