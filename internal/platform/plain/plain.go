// Package plain is a line-oriented frontend: each input line is one command
// and the board is printed as text after every processed command.
package plain

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/muesli/cancelreader"

	"github.com/vovakirdan/tui-tetris/internal/arbiter"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/session"
)

func init() {
	registry.Register("plain", func() registry.Frontend { return New() })
}

const help = "Controls: a=left d=right s=down w=rotate, one per line + Enter"

// Frontend prints ASCII boards.
type Frontend struct {
	glyphs tetris.Glyphs
}

// New creates a plain frontend using ASCII glyphs.
func New() *Frontend {
	return &Frontend{glyphs: tetris.PlainGlyphs}
}

func (f *Frontend) ID() string    { return "plain" }
func (f *Frontend) Title() string { return "Line-based text frontend (works over pipes)" }

// Play attaches env.In as the session's input source and prints every
// snapshot to env.Out. The final score line is left to the caller.
func (f *Frontend) Play(ctx context.Context, s *session.Session, env registry.Env) (session.Result, error) {
	s.Arbiter().Attach(inputSource(env))

	w := bufio.NewWriter(env.Out)
	p := &printer{w: w, glyphs: f.glyphs}
	fmt.Fprintln(w, help)

	res, err := s.Run(ctx, p.publish)
	if flushErr := w.Flush(); p.err == nil {
		p.err = flushErr
	}
	if err != nil {
		return res, err
	}
	if p.err != nil {
		return res, fmt.Errorf("plain: cannot write board: %w", p.err)
	}
	return res, nil
}

// inputSource makes env.In interruptible where the platform allows it.
// Regular files cannot be polled; they hit EOF on their own.
func inputSource(env registry.Env) arbiter.InputSource {
	in, err := cancelreader.NewReader(env.In)
	if err != nil {
		if env.Logger != nil {
			env.Logger.Debug("input is not cancellable", "error", err)
		}
		return drainInput{env.In}
	}
	return in
}

type drainInput struct {
	io.Reader
}

func (drainInput) Cancel() bool { return false }

// printer renders snapshots into a reused screen buffer.
type printer struct {
	w      *bufio.Writer
	glyphs tetris.Glyphs
	screen *core.Screen
	err    error
}

func (p *printer) publish(snap tetris.Snapshot) {
	if p.err != nil {
		return
	}
	w, h := tetris.ScreenSize(snap.Width, snap.Height, p.glyphs)
	if p.screen == nil || p.screen.Width() != w || p.screen.Height() != h {
		p.screen = core.NewScreen(w, h)
	}
	p.screen.Clear()
	snap.Render(p.screen, p.glyphs)

	if _, err := io.WriteString(p.w, p.screen.String()+"\n"); err != nil {
		p.err = err
		return
	}
	p.err = p.w.Flush()
}
