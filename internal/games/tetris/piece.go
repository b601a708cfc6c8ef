package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// Piece is the falling tetromino: a type, a rotation state and the board
// position of its anchor cell.
type Piece struct {
	Type     PieceType
	Rotation Rotation
	Anchor   core.Point
}

// NewPiece returns a piece of type t in the Up orientation at anchor.
func NewPiece(t PieceType, anchor core.Point) Piece {
	return Piece{Type: t, Rotation: RotationUp, Anchor: anchor}
}

// Color returns the piece's block color.
func (p Piece) Color() core.Color {
	return p.Type.Color()
}

// Positions returns the absolute cells of the piece in its current rotation.
func (p Piece) Positions() []core.Point {
	return p.PositionsAt(p.Rotation)
}

// PositionsAt returns the absolute cells the piece would occupy in rotation r.
func (p Piece) PositionsAt(r Rotation) []core.Point {
	offs := p.Type.Offsets(r)
	cells := make([]core.Point, len(offs))
	for i, o := range offs {
		cells[i] = p.Anchor.Add(o)
	}
	return cells
}

// Translate moves the anchor one cell in the direction of cmd.
// Bounds are not checked; other commands leave the piece unchanged.
func (p *Piece) Translate(cmd core.Command) {
	switch cmd {
	case core.CommandDown:
		p.Anchor.Y++
	case core.CommandLeft:
		p.Anchor.X--
	case core.CommandRight:
		p.Anchor.X++
	}
}

// Rotate advances the rotation state. Bounds are not checked.
func (p *Piece) Rotate() {
	p.Rotation = p.Rotation.Next()
}

// Moved returns a copy of the piece with cmd applied.
func (p Piece) Moved(cmd core.Command) Piece {
	if cmd == core.CommandRotate {
		p.Rotate()
	} else {
		p.Translate(cmd)
	}
	return p
}
