package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Status column right of the board.
const (
	panelWidth  = 14
	panelHeight = 8
)

// Glyphs controls how the board is drawn into a Screen.
type Glyphs struct {
	CellWidth int  // characters per board column
	Locked    rune // locked block
	Active    rune // active piece cell
	Empty     rune // empty cell
}

// Glyph presets for the frontends.
var (
	PlainGlyphs = Glyphs{CellWidth: 1, Locked: '#', Active: '@', Empty: '.'}
	BlockGlyphs = Glyphs{CellWidth: 2, Locked: '█', Active: '█', Empty: ' '}
)

// ScreenSize returns the screen dimensions needed to render a
// width×height board with the given glyphs.
func ScreenSize(width, height int, g Glyphs) (int, int) {
	return width*g.CellWidth + 2 + panelWidth, max(height+2, panelHeight)
}

// Render draws the framed board and the status panel into dst,
// starting at the top-left corner.
func (s Snapshot) Render(dst *core.Screen, g Glyphs) {
	dst.Clear()
	if g.CellWidth < 1 {
		g.CellWidth = 1
	}

	dst.DrawBox(0, 0, s.Width*g.CellWidth+2, s.Height+2, core.ColorGray)

	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			cell := core.Cell{Rune: g.Empty, Color: core.ColorGray}
			switch {
			case s.IsActive(core.Pt(x, y)):
				cell = core.Cell{Rune: g.Active, Color: s.ActiveColor}
			case s.Cells[y][x].Filled:
				cell = core.Cell{Rune: g.Locked, Color: s.Cells[y][x].Color}
			}
			for i := 0; i < g.CellWidth; i++ {
				dst.SetCell(1+x*g.CellWidth+i, 1+y, cell)
			}
		}
	}

	px := s.Width*g.CellWidth + 4
	dst.DrawText(px, 1, fmt.Sprintf("Score: %d", s.Score))
	dst.DrawText(px, 3, fmt.Sprintf("Next:  %s", s.Next))
	dst.DrawText(px, 5, fmt.Sprintf("Pieces: %d", s.Pieces))
	if s.GameOver() {
		dst.DrawText(px, 7, "GAME OVER")
	}
}
