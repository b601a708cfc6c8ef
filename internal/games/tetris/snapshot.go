package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// CellView is one grid cell as seen by a renderer.
type CellView struct {
	Filled bool
	Color  core.Color
}

// Snapshot is a read-only copy of the engine state for rendering.
// It shares no memory with the engine.
type Snapshot struct {
	Width  int
	Height int
	Cells  [][]CellView // locked blocks, [row][column]

	Active      []core.Point
	ActiveType  PieceType
	ActiveColor core.Color
	Next        PieceType

	Score  int
	Pieces int
	State  State
}

// Snapshot captures the current board, active piece and score.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Width:       e.grid.Width(),
		Height:      e.grid.Height(),
		Cells:       e.grid.Rows(),
		Active:      e.active.Positions(),
		ActiveType:  e.active.Type,
		ActiveColor: e.active.Color(),
		Next:        e.supply.Peek(),
		Score:       e.score,
		Pieces:      e.pieces,
		State:       e.state,
	}
}

// GameOver reports whether the snapshot was taken after the game ended.
func (s Snapshot) GameOver() bool {
	return s.State == StateOver
}

// IsActive reports whether p is one of the active piece's cells.
func (s Snapshot) IsActive(p core.Point) bool {
	for _, c := range s.Active {
		if c == p {
			return true
		}
	}
	return false
}
