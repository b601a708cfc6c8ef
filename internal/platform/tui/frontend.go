package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/session"
)

func init() {
	registry.Register("tui", func() registry.Frontend { return Frontend{} })
}

// Frontend plays a session full-screen in the terminal.
type Frontend struct{}

func (Frontend) ID() string    { return "tui" }
func (Frontend) Title() string { return "Full-screen colored terminal UI" }

// Play runs a Bubble Tea program until the player quits, then returns the
// session result. Quitting mid-game yields context.Canceled.
func (Frontend) Play(ctx context.Context, s *session.Session, env registry.Env) (session.Result, error) {
	model := NewModel(ctx, s, env.Store, env.Logger)

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}
	if env.In != nil {
		opts = append(opts, tea.WithInput(env.In))
	}
	if env.Out != nil {
		opts = append(opts, tea.WithOutput(env.Out))
	}

	_, runErr := tea.NewProgram(model, opts...).Run()
	res, err := model.Finish()
	if err == nil && runErr != nil && ctx.Err() == nil {
		err = runErr
	}
	return res, err
}
