package backend

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/loom/internal/layout"
	"github.com/dshills/loom/internal/ui"
)

// pointerShapes are the OSC 22 names for each cursor. Terminals that do
// not understand the sequence ignore it.
var pointerShapes = map[ui.Cursor]string{
	ui.CursorDefault:          "default",
	ui.CursorPointer:          "pointer",
	ui.CursorText:             "text",
	ui.CursorResizeHorizontal: "ew-resize",
	ui.CursorResizeVertical:   "ns-resize",
}

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	raster Rasterizer
	input  Translator
	cursor ui.Cursor
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminal(screen), nil
}

func newTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen, cursor: ui.CursorDefault}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.EnablePaste()
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.writePointerShape(ui.CursorDefault)
	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) Render(cmds []layout.Command) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	t.raster.Draw(screenCanvas{t.screen}, cmds)
	t.screen.Show()
}

func (t *Terminal) SetCursor(c ui.Cursor) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if c == t.cursor {
		return
	}
	t.cursor = c
	t.writePointerShape(c)
}

// writePointerShape sends OSC 22 straight to the tty. Best effort.
func (t *Terminal) writePointerShape(c ui.Cursor) {
	tty, ok := t.screen.Tty()
	if !ok {
		return
	}
	_, _ = fmt.Fprintf(tty, "\x1b]22;%s\x1b\\", pointerShapes[c])
}

func (t *Terminal) PollInput() ([]Input, error) {
	ev := t.screen.PollEvent()
	if ev == nil {
		return nil, ErrClosed
	}
	if _, ok := ev.(*tcell.EventInterrupt); ok {
		return nil, ErrClosed
	}
	return t.input.Translate(ev), nil
}

func (t *Terminal) Interrupt() {
	_ = t.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

// screenCanvas adapts a tcell screen to Canvas.
type screenCanvas struct {
	s tcell.Screen
}

func (c screenCanvas) Size() (int, int) {
	return c.s.Size()
}

func (c screenCanvas) Cell(x, y int) Cell {
	mainc, combc, style, width := c.s.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	fg, bg, _ := style.Decompose()
	return Cell{
		Text:  string(append([]rune{mainc}, combc...)),
		Width: width,
		Fg:    fromTcellColor(fg),
		Bg:    fromTcellColor(bg),
	}
}

func (c screenCanvas) SetCell(x, y int, cell Cell) {
	// tcell covers the trailing half of wide characters itself.
	if cell.Width == 0 || cell.Text == "" {
		return
	}
	runes := []rune(cell.Text)
	style := tcell.StyleDefault.Foreground(toTcellColor(cell.Fg)).Background(toTcellColor(cell.Bg))
	c.s.SetContent(x, y, runes[0], runes[1:], style)
}

func toTcellColor(c ui.Color) tcell.Color {
	if c.IsNone() {
		return tcell.ColorDefault
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func fromTcellColor(tc tcell.Color) ui.Color {
	if tc == tcell.ColorDefault {
		return ui.ColorNone
	}
	r, g, b := tc.RGB()
	if r < 0 {
		return ui.ColorNone
	}
	return ui.RGB(uint8(r), uint8(g), uint8(b))
}
