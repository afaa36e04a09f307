package biofmt_api

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger returns the stderr logger of the command line tool
func NewLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
