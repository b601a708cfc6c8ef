package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/arbiter"
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// oSource makes a uniform randomizer deal only O pieces.
type oSource struct{}

func (oSource) Intn(int) int { return 1 }

// newOSession builds a 4x4 board fed with O pieces and an arbiter whose
// ticker never fires, so the test fully controls the command stream.
// Five ticks end the game: two falls, a lock, a lock at spawn, and the
// spawn conflict.
func newOSession(opts ...Option) *Session {
	engine := tetris.New(
		tetris.WithSize(4, 4),
		tetris.WithSupply(tetris.NewSupply(tetris.NewUniform(oSource{}), 1)),
	)
	return New(engine, arbiter.New(arbiter.WithPeriod(time.Hour)), opts...)
}

type snapshotLog struct {
	mu    sync.Mutex
	snaps []tetris.Snapshot
}

func (l *snapshotLog) publish(s tetris.Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snaps = append(l.snaps, s)
}

func (l *snapshotLog) all() []tetris.Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]tetris.Snapshot(nil), l.snaps...)
}

type memRecorder struct {
	results []Result
	err     error
}

func (m *memRecorder) RecordResult(r Result) error {
	m.results = append(m.results, r)
	return m.err
}

func TestRunUntilGameOver(t *testing.T) {
	rec := &memRecorder{}
	s := newOSession(WithPlayer("ann"), WithRecorder(rec))
	for i := 0; i < 8; i++ {
		require.True(t, s.Arbiter().Submit(core.CommandTick))
	}

	var log snapshotLog
	res, err := s.Run(context.Background(), log.publish)
	require.NoError(t, err)

	assert.True(t, res.Over)
	assert.Equal(t, s.ID(), res.ID)
	assert.Equal(t, "ann", res.Player)
	assert.Equal(t, s.Player(), res.Player)
	assert.Zero(t, res.Score)
	assert.Equal(t, 3, res.Pieces)

	snaps := log.all()
	require.Len(t, snaps, 6, "initial snapshot plus one per processed command")
	assert.Equal(t, tetris.StateRunning, snaps[0].State)
	assert.Equal(t, tetris.StateRunning, snaps[4].State)
	assert.True(t, snaps[5].GameOver())

	// Commands queued behind the game-over tick are never processed.
	assert.Zero(t, s.Arbiter().Pending())
	assert.False(t, s.Arbiter().Submit(core.CommandLeft))

	require.Len(t, rec.results, 1)
	assert.Equal(t, res, rec.results[0])
}

func TestRunMovesBeforeTicks(t *testing.T) {
	s := newOSession()
	s.Arbiter().Submit(core.CommandRight)
	s.Arbiter().Submit(core.CommandRight) // blocked by the wall
	for i := 0; i < 5; i++ {
		s.Arbiter().Submit(core.CommandTick)
	}

	var log snapshotLog
	_, err := s.Run(context.Background(), log.publish)
	require.NoError(t, err)

	snaps := log.all()
	require.GreaterOrEqual(t, len(snaps), 3)
	assert.Equal(t, []core.Point{{X: 2, Y: 0}, {X: 3, Y: 0}, {X: 2, Y: 1}, {X: 3, Y: 1}}, snaps[1].Active)
	assert.Equal(t, snaps[1].Active, snaps[2].Active)
}

func TestRunCancelled(t *testing.T) {
	rec := &memRecorder{}
	s := newOSession(WithRecorder(rec))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	var res Result
	var err error
	go func() {
		res, err = s.Run(ctx, nil)
		close(done)
	}()

	s.Arbiter().Submit(core.CommandTick)
	assert.Eventually(t, func() bool { return s.Arbiter().Pending() == 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, res.Over)
	assert.Empty(t, rec.results, "aborted sessions are not recorded")
}

func TestRunTwice(t *testing.T) {
	s := newOSession()
	for i := 0; i < 5; i++ {
		s.Arbiter().Submit(core.CommandTick)
	}
	_, err := s.Run(context.Background(), nil)
	require.NoError(t, err)

	_, err = s.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestRecorderFailureIsNotFatal(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	s := newOSession(WithRecorder(rec))
	for i := 0; i < 5; i++ {
		s.Arbiter().Submit(core.CommandTick)
	}

	res, err := s.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, res.Over)
	assert.Len(t, rec.results, 1)
}

func TestRunWithRealTicker(t *testing.T) {
	cfg := config.Default()
	cfg.Board.Width, cfg.Board.Height = 4, 4
	cfg.TickInterval = time.Millisecond
	cfg.Seed = 1

	s, err := FromConfig(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := s.Run(ctx, nil)
	require.NoError(t, err, "a 4x4 board must fill up from gravity alone")
	assert.True(t, res.Over)
	assert.Positive(t, res.Pieces)
}

func TestFromConfigRejectsInvalid(t *testing.T) {
	cfg := config.Default()
	cfg.Randomizer = "nope"

	_, err := FromConfig(cfg)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestWithID(t *testing.T) {
	s := newOSession(WithID("fixed"))
	assert.Equal(t, "fixed", s.ID())

	generated := newOSession()
	assert.Len(t, generated.ID(), 36)
	assert.NotEqual(t, generated.ID(), newOSession().ID())
}
