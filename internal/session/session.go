// Package session runs one game: it owns an engine and its arbiter, consumes
// commands one at a time, publishes a snapshot after each, and shuts the
// producers down when the game ends.
package session

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-tetris/internal/arbiter"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// Result summarises a finished or aborted session.
type Result struct {
	ID       string
	Player   string
	Score    int
	Lines    int
	Pieces   int
	Duration time.Duration
	Over     bool // false when the session was cancelled before game over
}

// Publisher receives a snapshot after every processed command. It is called
// from the consumer goroutine and must not block for long.
type Publisher func(tetris.Snapshot)

// Recorder persists the result of a finished game.
type Recorder interface {
	RecordResult(Result) error
}

// Session wires one engine to one arbiter.
type Session struct {
	id       string
	player   string
	engine   *tetris.Engine
	arbiter  *arbiter.Arbiter
	logger   *log.Logger
	recorder Recorder

	mu      sync.Mutex
	running bool
}

// Option configures a Session.
type Option func(*Session)

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithPlayer sets the player name attached to the result.
func WithPlayer(name string) Option {
	return func(s *Session) {
		s.player = name
	}
}

// WithLogger sets the logger. The session ID is attached to every line.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder stores the result when the game ends.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// New creates a session around an existing engine and arbiter.
func New(engine *tetris.Engine, arb *arbiter.Arbiter, opts ...Option) *Session {
	s := &Session{
		id:      uuid.NewString(),
		engine:  engine,
		arbiter: arb,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	return s
}

// FromConfig builds the engine, supply and arbiter described by cfg.
func FromConfig(cfg config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := New(nil, nil, opts...)

	rnd, err := tetris.NewRandomizer(cfg.Randomizer, tetris.NewSource(cfg.EffectiveSeed()))
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	s.engine = tetris.New(
		tetris.WithSize(cfg.Board.Width, cfg.Board.Height),
		tetris.WithSupply(tetris.NewSupply(rnd, 1)),
		tetris.WithLogger(s.logger),
	)
	s.arbiter = arbiter.New(
		arbiter.WithPeriod(cfg.TickInterval),
		arbiter.WithLogger(s.logger),
	)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Player returns the player name.
func (s *Session) Player() string {
	return s.player
}

// Arbiter returns the arbiter so frontends can submit input or attach an
// input source. Frontends must not touch the engine directly.
func (s *Session) Arbiter() *arbiter.Arbiter {
	return s.arbiter
}

// Run starts the producers and processes commands until the game ends or
// ctx is cancelled. The initial snapshot is published before the first
// command. Run may be called once.
//
// On game over the producers are stopped before Run returns and the result
// is recorded. On cancellation the partial result is returned with ctx.Err().
func (s *Session) Run(ctx context.Context, publish Publisher) (Result, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return Result{}, fmt.Errorf("session: %s already started", s.id)
	}
	s.running = true
	s.mu.Unlock()

	if publish == nil {
		publish = func(tetris.Snapshot) {}
	}

	started := time.Now()
	s.logger.Info("session started", "player", s.player)

	s.arbiter.Start(ctx)
	defer s.arbiter.Stop()

	publish(s.engine.Snapshot())

	for {
		cmd, err := s.arbiter.Next(ctx)
		if err != nil {
			res := s.result(started, false)
			s.logger.Info("session aborted", "score", res.Score, "error", err)
			return res, err
		}

		outcome := s.engine.Apply(cmd)
		publish(s.engine.Snapshot())

		if outcome == tetris.OutcomeGameOver {
			s.arbiter.Stop()
			res := s.result(started, true)
			s.logger.Info("session finished",
				"score", res.Score,
				"pieces", res.Pieces,
				"duration", res.Duration.Round(time.Second),
			)
			s.record(res)
			return res, nil
		}
	}
}

func (s *Session) result(started time.Time, over bool) Result {
	snap := s.engine.Snapshot()
	return Result{
		ID:       s.id,
		Player:   s.player,
		Score:    snap.Score,
		Lines:    snap.Score,
		Pieces:   snap.Pieces,
		Duration: time.Since(started),
		Over:     over,
	}
}

// record failures are logged; a lost high score never fails the game.
func (s *Session) record(res Result) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordResult(res); err != nil {
		s.logger.Warn("failed to record result", "error", err)
	}
}
