package lib

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	LogTimeFormat = "2006-01-02T15:04:05.000"
)

// ZeroConsoleLog sends the global logger to stderr so that command output
// written to stdout stays parseable
func ZeroConsoleLog(pretty bool) {
	var out io.Writer = os.Stderr
	if runtime.GOOS == "windows" {
		out = colorable.NewColorableStderr()
	}
	if !pretty {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: LogTimeFormat})
}

// SetLogLevel switches the global level between info and debug
func SetLogLevel(debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
