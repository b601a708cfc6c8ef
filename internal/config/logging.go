package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger builds the process logger at the configured level.
func (c Config) NewLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
		Level:           c.Level(),
	})
}
