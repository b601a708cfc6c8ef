package tetris

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// fillRow locks every cell of row y.
func fillRow(g *Grid, y int) {
	cells := make([]core.Point, g.Width())
	for x := range cells {
		cells[x] = core.Pt(x, y)
	}
	g.Lock(cells, core.ColorWhite)
}

// mark locks a single colored block.
func mark(g *Grid, x, y int, c core.Color) {
	g.Lock([]core.Point{core.Pt(x, y)}, c)
}

func TestHasConflictOutOfBounds(t *testing.T) {
	empty := NewGrid(DefaultWidth, DefaultHeight)
	full := NewGrid(DefaultWidth, DefaultHeight)
	for y := 0; y < DefaultHeight; y++ {
		fillRow(full, y)
	}

	tests := []struct {
		name string
		p    core.Point
	}{
		{"column below zero", core.Pt(-1, 5)},
		{"column at width", core.Pt(DefaultWidth, 5)},
		{"row below zero", core.Pt(5, -1)},
		{"row at height", core.Pt(5, DefaultHeight)},
		{"far outside", core.Pt(100, 100)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			candidates := []core.Point{core.Pt(0, 0), tc.p}
			if !empty.HasConflict(candidates) {
				t.Errorf("empty grid: HasConflict(%v) = false, expected true", tc.p)
			}
			if !full.HasConflict(candidates) {
				t.Errorf("full grid: HasConflict(%v) = false, expected true", tc.p)
			}
		})
	}
}

func TestHasConflictOccupied(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	mark(g, 3, 7, core.ColorRed)

	if !g.HasConflict([]core.Point{core.Pt(2, 7), core.Pt(3, 7)}) {
		t.Error("expected conflict on occupied cell")
	}
	if g.HasConflict([]core.Point{core.Pt(2, 7), core.Pt(4, 7), core.Pt(3, 6)}) {
		t.Error("expected no conflict on free cells")
	}
}

func TestLockWritesBlocks(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	g.Lock([]core.Point{core.Pt(0, 19), core.Pt(1, 19)}, core.ColorBlue)

	for _, p := range []core.Point{core.Pt(0, 19), core.Pt(1, 19)} {
		b := g.At(p)
		if b == nil || b.Color != core.ColorBlue {
			t.Errorf("At(%v) = %v, expected blue block", p, b)
		}
	}
	if g.At(core.Pt(2, 19)) != nil {
		t.Error("neighbouring cell should stay empty")
	}
}

func TestLockIntoOccupiedCellPanics(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	mark(g, 4, 4, core.ColorRed)

	defer func() {
		if recover() == nil {
			t.Error("expected panic when locking into an occupied cell")
		}
	}()
	mark(g, 4, 4, core.ColorGreen)
}

func TestClearCompletedLinesNone(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	for y := 10; y < DefaultHeight; y++ {
		// every row misses its last column
		for x := 0; x < DefaultWidth-1; x++ {
			mark(g, x, y, core.ColorGreen)
		}
	}
	before := g.Rows()

	if n := g.ClearCompletedLines(); n != 0 {
		t.Errorf("ClearCompletedLines() = %d, expected 0", n)
	}
	if !reflect.DeepEqual(before, g.Rows()) {
		t.Error("grid changed although no line was complete")
	}
}

func TestClearCompletedLinesSingle(t *testing.T) {
	const r = 12
	g := NewGrid(DefaultWidth, DefaultHeight)
	fillRow(g, r)
	mark(g, 0, r-1, core.ColorRed)
	mark(g, 5, 3, core.ColorCyan)
	mark(g, 2, 15, core.ColorYellow)
	before := g.Rows()

	if n := g.ClearCompletedLines(); n != 1 {
		t.Fatalf("ClearCompletedLines() = %d, expected 1", n)
	}

	after := g.Rows()
	for x := 0; x < DefaultWidth; x++ {
		if after[0][x].Filled {
			t.Errorf("row 0 column %d should be empty", x)
		}
	}
	for y := 1; y <= r; y++ {
		if !reflect.DeepEqual(after[y], before[y-1]) {
			t.Errorf("row %d should hold former row %d", y, y-1)
		}
	}
	for y := r + 1; y < DefaultHeight; y++ {
		if !reflect.DeepEqual(after[y], before[y]) {
			t.Errorf("row %d below the cleared line should be unchanged", y)
		}
	}
}

func TestClearCompletedLinesMultiple(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	fillRow(g, 5)
	fillRow(g, 10)
	mark(g, 1, 4, core.ColorRed)
	mark(g, 3, 7, core.ColorGreen)
	mark(g, 9, 9, core.ColorBlue)
	mark(g, 4, 15, core.ColorOrange)

	expected := NewGrid(DefaultWidth, DefaultHeight)
	mark(expected, 1, 6, core.ColorRed)   // above both cleared rows: down by two
	mark(expected, 3, 8, core.ColorGreen) // between them: down by one
	mark(expected, 9, 10, core.ColorBlue)
	mark(expected, 4, 15, core.ColorOrange) // below both: unchanged

	if n := g.ClearCompletedLines(); n != 2 {
		t.Fatalf("ClearCompletedLines() = %d, expected 2", n)
	}

	got, want := g.Rows(), expected.Rows()
	for y := range want {
		if !reflect.DeepEqual(got[y], want[y]) {
			t.Errorf("row %d = %v, expected %v", y, got[y], want[y])
		}
	}
}

func TestClearCompletedLinesAdjacentRows(t *testing.T) {
	g := NewGrid(DefaultWidth, DefaultHeight)
	fillRow(g, 18)
	fillRow(g, 19)
	mark(g, 0, 17, core.ColorRed)

	if n := g.ClearCompletedLines(); n != 2 {
		t.Fatalf("ClearCompletedLines() = %d, expected 2", n)
	}
	if b := g.At(core.Pt(0, 19)); b == nil || b.Color != core.ColorRed {
		t.Errorf("block above the cleared rows should land on row 19, got %v", b)
	}
	for y := 0; y < 19; y++ {
		for x := 0; x < DefaultWidth; x++ {
			if g.At(core.Pt(x, y)) != nil {
				t.Errorf("cell (%d, %d) should be empty", x, y)
			}
		}
	}
}

func TestRowsIsACopy(t *testing.T) {
	g := NewGrid(4, 4)
	rows := g.Rows()
	rows[0][0] = CellView{Filled: true}

	if g.At(core.Pt(0, 0)) != nil {
		t.Error("modifying Rows() result must not touch the grid")
	}
}
