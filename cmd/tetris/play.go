package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/session"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagUI     string
	flagPlayer string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game.

Controls:
  a / Left    - Move left
  d / Right   - Move right
  s / Down    - Move down
  w / Up      - Rotate
  q / Esc     - Quit (full-screen UI)

With --ui plain every input line is one command (a, d, s or w followed by
Enter); anything else is ignored. Without --ui the full-screen UI is used
when stdin and stdout are terminals.

Examples:
  tetris play
  tetris play --ui plain
  tetris play --randomizer bag --tick 800ms`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagUI, "ui", "", "Frontend: tui or plain (see 'tetris list')")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name for the scoreboard (default $USER)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ui := flagUI
	if ui == "" {
		ui = defaultUI()
	}
	frontend, err := registry.Create(ui)
	if err != nil {
		return fmt.Errorf("%w (run 'tetris list' to see available frontends)", err)
	}

	// The full-screen UI owns the terminal; logs go to --log-file or nowhere.
	var logOut io.Writer = os.Stderr
	if ui == "tui" {
		logOut = io.Discard
	}
	logger, closeLog, err := newLogger(cfg, logOut)
	if err != nil {
		return err
	}
	defer closeLog()

	// Open score storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := []session.Option{
		session.WithPlayer(playerName()),
		session.WithLogger(logger),
	}
	if store != nil {
		opts = append(opts, session.WithRecorder(store))
	}
	sess, err := session.FromConfig(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := frontend.Play(ctx, sess, registry.Env{
		In:     os.Stdin,
		Out:    os.Stdout,
		Store:  store,
		Logger: logger,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("running game: %w", err)
	}

	if res.Over {
		fmt.Printf("Game over! Final score: %d\n", res.Score)
	} else {
		fmt.Printf("Game abandoned. Score: %d\n", res.Score)
	}
	return nil
}

// defaultUI picks the full-screen UI only for interactive terminals.
func defaultUI() string {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return "tui"
	}
	return "plain"
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}
