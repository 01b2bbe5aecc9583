// Package app holds the process wide setup shared by natroute binaries
package app

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Initialize sets up the global logger to print human readable lines on
// w at info level
func Initialize(w io.Writer) {
	SetOutput(w)
	SetDebug(false)
}

// SetOutput redirects the global logger to w
func SetOutput(w io.Writer) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
}

// SetDebug switches the global log level between debug and info
func SetDebug(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
