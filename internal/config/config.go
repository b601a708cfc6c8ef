// Package config provides YAML-based configuration loading for tui-tetris,
// with environment variable overrides and validation.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Minimum board dimensions; every piece must fit at spawn.
const (
	MinWidth  = 4
	MinHeight = 4
)

// Config contains all runtime configuration.
type Config struct {
	Board        BoardConfig   `yaml:"board"`
	TickInterval time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	Randomizer   string        `yaml:"randomizer" env:"RANDOMIZER"`
	Seed         int64         `yaml:"seed" env:"SEED"`
	LogLevel     string        `yaml:"log_level" env:"LOG_LEVEL"`
	DBPath       string        `yaml:"db_path" env:"DB"`
}

// BoardConfig defines the grid dimensions.
type BoardConfig struct {
	Width  int `yaml:"width" env:"WIDTH"`
	Height int `yaml:"height" env:"HEIGHT"`
}

// Default returns the hardcoded configuration used when no file is found.
func Default() Config {
	return Config{
		Board: BoardConfig{
			Width:  tetris.DefaultWidth,
			Height: tetris.DefaultHeight,
		},
		TickInterval: 1500 * time.Millisecond,
		Randomizer:   tetris.RandomizerUniform,
		LogLevel:     "info",
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Board.Width < MinWidth {
		return fmt.Errorf("%w: board width %d is below %d", ErrInvalid, c.Board.Width, MinWidth)
	}
	if c.Board.Height < MinHeight {
		return fmt.Errorf("%w: board height %d is below %d", ErrInvalid, c.Board.Height, MinHeight)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive, got %s", ErrInvalid, c.TickInterval)
	}
	switch c.Randomizer {
	case tetris.RandomizerUniform, tetris.RandomizerBag:
	default:
		return fmt.Errorf("%w: unknown randomizer %q", ErrInvalid, c.Randomizer)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// EffectiveSeed returns the configured seed, or the current time when it is zero.
func (c Config) EffectiveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}
