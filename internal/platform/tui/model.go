package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/session"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// run tracks the session goroutine. It is shared by every copy of a Model.
type run struct {
	once   sync.Once
	done   chan struct{}
	result session.Result
	err    error
}

// Model is the Bubble Tea model for one game.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	sess   *session.Session
	feed   *feed
	run    *run
	store  *storage.Store
	logger *log.Logger

	keys   KeyMap
	help   help.Model
	screen *core.Screen

	snap     tetris.Snapshot
	ready    bool
	over     bool
	best     int
	scores   table.Model
	width    int
	height   int
	quitting bool
}

// NewModel creates a model that plays sess. The session starts when the
// program calls Init and is cancelled with ctx or when the player quits.
// store may be nil.
func NewModel(ctx context.Context, sess *session.Session, store *storage.Store, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ctx, cancel := context.WithCancel(ctx)
	return Model{
		ctx:    ctx,
		cancel: cancel,
		sess:   sess,
		feed:   newFeed(),
		run:    &run{done: make(chan struct{})},
		store:  store,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}
}

// Init starts the session loop and begins listening for its snapshots.
func (m Model) Init() tea.Cmd {
	m.start()
	return m.feed.wait()
}

func (m Model) start() {
	m.run.once.Do(func() {
		go func() {
			var last tetris.Snapshot
			publish := func(s tetris.Snapshot) {
				last = s
				m.feed.send(snapshotMsg(s))
			}
			res, err := m.sess.Run(m.ctx, publish)
			m.run.result, m.run.err = res, err
			close(m.run.done)
			m.feed.send(resultMsg{result: res, err: err, final: last})
		}()
	})
}

// Finish cancels the session if it is still running and waits for it.
// It returns the session result; a session that never started reports
// context.Canceled.
func (m Model) Finish() (session.Result, error) {
	m.cancel()
	m.run.once.Do(func() {
		m.run.err = context.Canceled
		close(m.run.done)
	})
	<-m.run.done
	m.feed.close()
	return m.run.result, m.run.err
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case snapshotMsg:
		m.setSnapshot(tetris.Snapshot(msg))
		return m, m.feed.wait()

	case resultMsg:
		return m.handleResult(msg)
	}

	return m, nil
}

// handleKey submits game keys to the arbiter. The model never applies
// commands itself.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsQuit(msg) {
		m.quitting = true
		m.cancel()
		return m, tea.Quit
	}
	if m.over {
		return m, nil
	}

	cmd := m.keys.Command(msg)
	if m.sess.Arbiter().Submit(cmd) {
		m.logger.Debug("input", "key", msg.String(), "command", cmd)
	}
	return m, nil
}

func (m Model) handleResult(msg resultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if !errors.Is(msg.err, context.Canceled) {
			m.logger.Error("session failed", "error", msg.err)
		}
		m.quitting = true
		return m, tea.Quit
	}

	m.over = true
	m.setSnapshot(msg.final)
	m.feed.close()

	if m.store != nil {
		if entries, err := m.store.TopScores(maxScores); err != nil {
			m.logger.Warn("could not load high scores", "error", err)
		} else {
			m.scores = NewScoreTable(entries, msg.result.ID)
		}
		if best, err := m.store.HighScore(); err == nil {
			m.best = best
		}
	}
	return m, nil
}

// GameOver reports whether the session ended with a game over.
func (m Model) GameOver() bool {
	return m.over
}

// Snapshot returns the most recent board.
func (m Model) Snapshot() tetris.Snapshot {
	return m.snap
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Starting..."
	}

	var b strings.Builder
	b.WriteString(m.renderBoard())
	b.WriteString("\n")

	if m.over {
		b.WriteString("\n")
		b.WriteString(m.renderGameOver())
	} else {
		b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	}

	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, b.String())
	}
	return b.String()
}

// setSnapshot stores snap and sizes the screen buffer for it.
func (m *Model) setSnapshot(snap tetris.Snapshot) {
	m.snap = snap
	m.ready = true
	w, h := tetris.ScreenSize(snap.Width, snap.Height, tetris.BlockGlyphs)
	if m.screen == nil || m.screen.Width() != w || m.screen.Height() != h {
		m.screen = core.NewScreen(w, h)
	}
}

func (m Model) renderBoard() string {
	m.snap.Render(m.screen, tetris.BlockGlyphs)
	return RenderScreen(m.screen)
}

func (m Model) renderGameOver() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("GAME OVER  %s  Final score: %d", m.sess.Player(), m.snap.Score)))
	if m.best > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (best %d)", m.best)))
	}
	b.WriteString("\n")
	if len(m.scores.Rows()) > 0 {
		b.WriteString(frameStyle.Render(m.scores.View()))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("press q to exit"))
	return b.String()
}
