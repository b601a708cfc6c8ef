// Package tui is the Bubble Tea frontend. Key presses are classified and
// submitted to the session's arbiter; snapshots published by the session
// loop are delivered to the model as messages.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/session"
)

// feedBuffer bounds how far rendering may lag behind the game loop.
const feedBuffer = 16

// snapshotMsg carries a board published after a processed command.
type snapshotMsg tetris.Snapshot

// resultMsg is sent once when the session loop returns.
type resultMsg struct {
	result session.Result
	err    error
	final  tetris.Snapshot
}

// feed carries messages from the session goroutine to the Bubble Tea loop.
// Send never blocks the game loop.
type feed struct {
	events chan tea.Msg
	done   chan struct{}
}

func newFeed() *feed {
	return &feed{
		events: make(chan tea.Msg, feedBuffer),
		done:   make(chan struct{}),
	}
}

// send delivers msg, dropping the oldest undelivered message if the
// buffer is full.
func (f *feed) send(msg tea.Msg) {
	select {
	case <-f.done:
		return
	default:
	}

	select {
	case f.events <- msg:
	default:
		select {
		case <-f.events:
		default:
		}
		select {
		case f.events <- msg:
		default:
		}
	}
}

// close stops wait commands once the buffer is drained.
func (f *feed) close() {
	select {
	case <-f.done:
	default:
		close(f.done)
	}
}

// wait returns a command that blocks for the next message.
func (f *feed) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-f.events:
			return msg
		default:
		}
		select {
		case msg := <-f.events:
			return msg
		case <-f.done:
			return nil
		}
	}
}
