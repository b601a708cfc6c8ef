// Package tetris implements the falling-block game state engine: piece
// geometry, the grid of locked blocks, movement and rotation legality, the
// lock sequence with line clearing, and game-over detection.
//
// The engine is single-threaded. It is driven one core.Command at a time by a
// consumer loop and exposes read-only snapshots for rendering.
package tetris

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// ErrInvalidMove is returned by ApplyMove for commands that are not moves.
var ErrInvalidMove = errors.New("tetris: not a move command")

// State is the engine lifecycle state.
type State int

const (
	StateRunning State = iota
	StateOver
)

func (s State) String() string {
	if s == StateOver {
		return "over"
	}
	return "running"
}

// Outcome is the result of processing a command.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeGameOver
)

func (o Outcome) String() string {
	if o == OutcomeGameOver {
		return "game_over"
	}
	return "continue"
}

// Engine owns the grid, the active piece, the piece supply and the score.
type Engine struct {
	grid   *Grid
	active Piece
	supply *Supply
	state  State
	score  int
	pieces int // pieces spawned, including the active one
	logger *log.Logger

	width, height int
}

// Option configures an Engine.
type Option func(*Engine)

// WithSize sets the board dimensions.
func WithSize(width, height int) Option {
	return func(e *Engine) {
		e.width = width
		e.height = height
	}
}

// WithSupply sets the piece supply queue.
func WithSupply(s *Supply) Option {
	return func(e *Engine) {
		e.supply = s
	}
}

// WithLogger sets the logger. Engines log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine with an empty grid, score 0 and the first piece
// already spawned from the supply. Without WithSupply a uniform randomizer
// seeded from the clock is used.
func New(opts ...Option) *Engine {
	e := &Engine{
		width:  DefaultWidth,
		height: DefaultHeight,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.supply == nil {
		e.supply = NewSupply(NewUniform(NewSource(time.Now().UnixNano())), 1)
	}

	e.grid = NewGrid(e.width, e.height)
	e.spawn()
	return e
}

// Grid returns the engine's grid. Callers outside the consumer loop must use
// Snapshot instead.
func (e *Engine) Grid() *Grid {
	return e.grid
}

// Active returns a copy of the active piece.
func (e *Engine) Active() Piece {
	return e.active
}

// Score returns the number of lines cleared so far.
func (e *Engine) Score() int {
	return e.score
}

// State returns the lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Apply processes one command from the arbiter queue. Once the engine is
// over every command reports OutcomeGameOver without touching any state.
func (e *Engine) Apply(cmd core.Command) Outcome {
	if e.state == StateOver {
		return OutcomeGameOver
	}

	switch {
	case cmd == core.CommandTick:
		return e.ApplyTick()
	case cmd.IsMove():
		//nolint:errcheck // IsMove guarantees a valid command
		e.ApplyMove(cmd)
	default:
		e.logger.Debug("dropping command", "command", cmd)
	}
	return OutcomeContinue
}

// ApplyTick advances gravity by one step. If the active piece can move down
// it does; otherwise the lock sequence runs.
func (e *Engine) ApplyTick() Outcome {
	if e.state == StateOver {
		return OutcomeGameOver
	}
	if e.try(core.CommandDown) {
		return OutcomeContinue
	}
	return e.lock()
}

// ApplyMove translates or rotates the active piece if the result is legal.
// It reports whether the piece moved; an illegal move is a silent no-op.
func (e *Engine) ApplyMove(cmd core.Command) (bool, error) {
	if !cmd.IsMove() {
		return false, fmt.Errorf("%w: %v", ErrInvalidMove, cmd)
	}
	if e.state == StateOver {
		return false, nil
	}
	return e.try(cmd), nil
}

// try applies cmd to the active piece when the resulting cells are free.
func (e *Engine) try(cmd core.Command) bool {
	candidate := e.active.Moved(cmd)
	if e.grid.HasConflict(candidate.Positions()) {
		return false
	}
	e.active = candidate
	return true
}

// lock runs the lock sequence for a piece that can no longer descend:
// game-over check, lock, line clear, next spawn.
//
// The game-over check looks at the active piece where it stands. A piece
// spawned into occupied cells is therefore only reported one tick later,
// when it fails to move down.
func (e *Engine) lock() Outcome {
	cells := e.active.Positions()
	if e.grid.HasConflict(cells) {
		e.state = StateOver
		e.logger.Info("game over", "score", e.score, "pieces", e.pieces)
		return OutcomeGameOver
	}

	e.grid.Lock(cells, e.active.Color())
	cleared := e.grid.ClearCompletedLines()
	e.score += cleared
	e.logger.Debug("piece locked",
		"type", e.active.Type,
		"x", e.active.Anchor.X,
		"y", e.active.Anchor.Y,
		"cleared", cleared,
		"score", e.score,
	)

	e.spawn()
	return OutcomeContinue
}

func (e *Engine) spawn() {
	t := e.supply.Next()
	e.active = NewPiece(t, t.Spawn(e.grid.Width()))
	e.pieces++
}
