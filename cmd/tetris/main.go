// tetris is a falling-block puzzle game for the terminal.
//
// Usage:
//
//	tetris play              - Play a game (full-screen UI on a terminal, text otherwise)
//	tetris list              - List available frontends
//	tetris scores            - Show high scores
//	tetris serve             - Host games over SSH
//
// Global flags:
//
//	--config <path>      - Config file (default: ~/.tetris/config.yaml, ./configs/tetris.yaml)
//	--seed <value>       - RNG seed for reproducible piece order
//	--db <path>          - Scores database (default: ~/.tetris/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"

	// Import frontends to register them
	_ "github.com/vovakirdan/tui-tetris/internal/platform/plain"
	_ "github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	// Global flags
	flagConfig     string
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
	flagTick       time.Duration
	flagRandomizer string
	flagWidth      int
	flagHeight     int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Falling-block puzzle game for the terminal",
	Long: `tetris drops pieces onto a 10x20 board. Move and rotate them to
complete rows; every cleared row scores one point. The game ends when a new
piece has no room.

Available commands:
  play     - Play a game
  list     - Show available frontends
  scores   - View high scores
  serve    - Host games over SSH

Configuration is read from --config, ~/.tetris/config.yaml or
./configs/tetris.yaml, then overridden by TETRIS_* environment variables
and finally by flags.

Examples:
  tetris play
  tetris play --ui plain --seed 42
  echo "a d s w" | tr ' ' '\n' | tetris play
  tetris scores
  tetris serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Path to config YAML")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "", "Path to scores database (default ~/.tetris/scores.db)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Append logs to this file")
	pf.DurationVar(&flagTick, "tick", 0, "Gravity interval (e.g. 1500ms)")
	pf.StringVar(&flagRandomizer, "randomizer", "", "Piece randomizer: uniform or bag")
	pf.IntVar(&flagWidth, "width", 0, "Board width")
	pf.IntVar(&flagHeight, "height", 0, "Board height")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig resolves the file, environment and flag layers.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if flags.Changed("tick") {
		cfg.TickInterval = flagTick
	}
	if flags.Changed("randomizer") {
		cfg.Randomizer = flagRandomizer
	}
	if flags.Changed("width") {
		cfg.Board.Width = flagWidth
	}
	if flags.Changed("height") {
		cfg.Board.Height = flagHeight
	}
}

// newLogger returns a logger writing to --log-file if set, otherwise to
// fallback. The returned close function must be called on exit.
func newLogger(cfg config.Config, fallback io.Writer) (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return cfg.NewLogger(fallback), func() {}, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return cfg.NewLogger(f), func() { f.Close() }, nil
}
