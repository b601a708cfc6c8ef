package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Default board dimensions.
const (
	DefaultWidth  = 10
	DefaultHeight = 20
)

// Block is a locked cell on the grid.
type Block struct {
	Color core.Color
}

// Grid is the well of locked blocks. A nil entry is an empty cell.
// Rows are indexed top to bottom: cells[y][x].
type Grid struct {
	width  int
	height int
	cells  [][]*Block
}

// NewGrid creates an empty width×height grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{width: width, height: height}
	g.cells = make([][]*Block, height)
	for y := range g.cells {
		g.cells[y] = make([]*Block, width)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// At returns the block at p, or nil if the cell is empty or off the grid.
func (g *Grid) At(p core.Point) *Block {
	if !p.In(g.width, g.height) {
		return nil
	}
	return g.cells[p.Y][p.X]
}

// HasConflict reports whether any candidate cell lies outside the grid or on
// an occupied cell. Every legality check in the engine goes through here.
func (g *Grid) HasConflict(cells []core.Point) bool {
	for _, p := range cells {
		if !p.In(g.width, g.height) {
			return true
		}
		if g.cells[p.Y][p.X] != nil {
			return true
		}
	}
	return false
}

// Lock writes a block of the given color into each cell.
// Every cell must be on the grid and empty; the caller checks legality first,
// so a violation is a bug and panics.
func (g *Grid) Lock(cells []core.Point, color core.Color) {
	for _, p := range cells {
		if !p.In(g.width, g.height) {
			panic(fmt.Sprintf("tetris: lock outside grid at (%d, %d)", p.X, p.Y))
		}
		if g.cells[p.Y][p.X] != nil {
			panic(fmt.Sprintf("tetris: lock into occupied cell (%d, %d)", p.X, p.Y))
		}
		g.cells[p.Y][p.X] = &Block{Color: color}
	}
}

// ClearCompletedLines removes every fully occupied row and returns how many
// were removed.
//
// Completed rows are found on the grid as it is before any shifting. They are
// then removed top to bottom; removing row r moves rows 0..r-1 down by one and
// empties row 0. Rows below r keep their index, so the remaining completed
// indices stay valid and no shifted row is evaluated twice.
func (g *Grid) ClearCompletedLines() int {
	var completed []int
	for y := range g.cells {
		if g.rowFull(y) {
			completed = append(completed, y)
		}
	}

	for _, r := range completed {
		for y := r; y > 0; y-- {
			g.cells[y] = g.cells[y-1]
		}
		g.cells[0] = make([]*Block, g.width)
	}

	return len(completed)
}

func (g *Grid) rowFull(y int) bool {
	for _, b := range g.cells[y] {
		if b == nil {
			return false
		}
	}
	return true
}

// Rows returns a copy of the grid contents, indexed [row][column].
func (g *Grid) Rows() [][]CellView {
	rows := make([][]CellView, g.height)
	for y, row := range g.cells {
		rows[y] = make([]CellView, g.width)
		for x, b := range row {
			if b != nil {
				rows[y][x] = CellView{Filled: true, Color: b.Color}
			}
		}
	}
	return rows
}
