package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// PieceType is one of the seven tetromino shapes.
type PieceType int

const (
	TypeI PieceType = iota
	TypeO
	TypeS
	TypeZ
	TypeJ
	TypeL
	TypeT
)

// PieceTypeCount is the number of distinct piece types.
const PieceTypeCount = 7

// AllTypes lists every piece type in declaration order.
var AllTypes = [PieceTypeCount]PieceType{TypeI, TypeO, TypeS, TypeZ, TypeJ, TypeL, TypeT}

// Rotation is a discrete orientation of a piece.
type Rotation int

const (
	RotationUp Rotation = iota
	RotationRight
	RotationDown
	RotationLeft
)

// Next returns the following rotation state in the cycle Up→Right→Down→Left→Up.
func (r Rotation) Next() Rotation {
	return (r + 1) % 4
}

func (r Rotation) String() string {
	switch r {
	case RotationUp:
		return "up"
	case RotationRight:
		return "right"
	case RotationDown:
		return "down"
	case RotationLeft:
		return "left"
	default:
		return "unknown"
	}
}

// offsets holds the cell offsets from the anchor for every piece type and
// rotation state, indexed [type][rotation]. Y grows downward.
//
// The tables are authored, not derived: O is identical in every state and I
// flips between a horizontal and a vertical line around the same anchor.
var offsets = [PieceTypeCount][4][4]core.Point{
	TypeI: {
		{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
		{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}},
		{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}},
	},
	TypeO: {
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
	},
	TypeS: {
		{{X: 0, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}},
		{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: 1}},
		{{X: -1, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}},
	},
	TypeZ: {
		{{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 1, Y: -1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: 0, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: -1, Y: 1}},
	},
	TypeJ: {
		{{X: -1, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}},
		{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: -1, Y: 1}, {X: 0, Y: 1}},
	},
	TypeL: {
		{{X: 1, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}},
		{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: -1, Y: 1}},
		{{X: -1, Y: -1}, {X: 0, Y: -1}, {X: 0, Y: 0}, {X: 0, Y: 1}},
	},
	TypeT: {
		{{X: 0, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 0, Y: -1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		{{X: -1, Y: 0}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		{{X: 0, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 1}},
	},
}

var colors = [PieceTypeCount]core.Color{
	TypeI: core.ColorCyan,
	TypeO: core.ColorYellow,
	TypeS: core.ColorGreen,
	TypeZ: core.ColorRed,
	TypeJ: core.ColorBlue,
	TypeL: core.ColorOrange,
	TypeT: core.ColorMagenta,
}

// spawnRows is the anchor row a fresh piece starts on, chosen so that the
// Up orientation sits flush against the top of the board.
var spawnRows = [PieceTypeCount]int{
	TypeI: 0,
	TypeO: 0,
	TypeS: 1,
	TypeZ: 1,
	TypeJ: 1,
	TypeL: 1,
	TypeT: 1,
}

// Offsets returns the four anchor-relative cells of t in rotation r.
func (t PieceType) Offsets(r Rotation) [4]core.Point {
	return offsets[t][r]
}

// Color returns the block color of t.
func (t PieceType) Color() core.Color {
	return colors[t]
}

// Spawn returns the initial anchor of t on a board of the given width.
func (t PieceType) Spawn(width int) core.Point {
	return core.Point{X: width/2 - 1, Y: spawnRows[t]}
}

func (t PieceType) String() string {
	switch t {
	case TypeI:
		return "I"
	case TypeO:
		return "O"
	case TypeS:
		return "S"
	case TypeZ:
		return "Z"
	case TypeJ:
		return "J"
	case TypeL:
		return "L"
	case TypeT:
		return "T"
	default:
		return "?"
	}
}
