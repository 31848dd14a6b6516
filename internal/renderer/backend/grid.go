package backend

import (
	"strings"

	"github.com/dshills/loom/internal/ui"
)

// Cell is one terminal cell. Text holds a whole grapheme cluster; the
// cell after a double-width cluster has Width 0 and empty Text.
type Cell struct {
	Text  string
	Width int
	Fg    ui.Color
	Bg    ui.Color
}

// EmptyCell returns a blank cell with default colors.
func EmptyCell() Cell {
	return Cell{Text: " ", Width: 1}
}

// Canvas is a cell surface the rasterizer draws onto.
type Canvas interface {
	Size() (width, height int)
	Cell(x, y int) Cell
	SetCell(x, y int, c Cell)
}

// Grid is an in-memory Canvas.
type Grid struct {
	width, height int
	cells         [][]Cell
}

// NewGrid creates a blank grid with the given dimensions.
func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height}
	g.allocate()
	return g
}

func (g *Grid) allocate() {
	g.cells = make([][]Cell, g.height)
	for y := range g.cells {
		g.cells[y] = make([]Cell, g.width)
		for x := range g.cells[y] {
			g.cells[y][x] = EmptyCell()
		}
	}
}

// Resize resizes the grid, preserving content where possible.
func (g *Grid) Resize(width, height int) {
	if width == g.width && height == g.height {
		return
	}
	old := g.cells
	oldWidth, oldHeight := g.width, g.height
	g.width, g.height = width, height
	g.allocate()

	for y := 0; y < min(oldHeight, height); y++ {
		copy(g.cells[y][:min(oldWidth, width)], old[y])
	}
}

// Size returns the grid dimensions.
func (g *Grid) Size() (int, int) {
	return g.width, g.height
}

// Cell returns the cell at x, y. Positions outside the grid return an
// empty cell.
func (g *Grid) Cell(x, y int) Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return EmptyCell()
	}
	return g.cells[y][x]
}

// SetCell sets the cell at x, y. Positions outside the grid are ignored.
func (g *Grid) SetCell(x, y int, c Cell) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.cells[y][x] = c
}

// Clear resets every cell.
func (g *Grid) Clear() {
	for y := range g.cells {
		for x := range g.cells[y] {
			g.cells[y][x] = EmptyCell()
		}
	}
}

// Line returns the text of row y with continuation cells skipped.
func (g *Grid) Line(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	var b strings.Builder
	for _, c := range g.cells[y] {
		if c.Width == 0 {
			continue
		}
		b.WriteString(c.Text)
	}
	return b.String()
}

// String returns all rows joined by newlines.
func (g *Grid) String() string {
	lines := make([]string, g.height)
	for y := range lines {
		lines[y] = g.Line(y)
	}
	return strings.Join(lines, "\n")
}
