package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init installs the default logger on stderr. Debug enables tracing of
// loading, calls and collections.
func Init(debug, noColor bool) {
	Setup(os.Stderr, debug, noColor)
}

// Setup installs the default logger on w
func Setup(w io.Writer, debug, noColor bool) *log.Logger {
	l := log.NewWithOptions(w,
		log.Options{
			ReportCaller:    debug,
			ReportTimestamp: false,
			TimeFormat:      time.RFC3339,
			Prefix:          "SL",
		})

	l.SetLevel(log.WarnLevel)
	if debug {
		l.SetLevel(log.DebugLevel)
	}

	l.SetColorProfile(termenv.ANSI256)
	if noColor {
		l.SetColorProfile(termenv.Ascii)
	}

	log.SetDefault(l)
	return l
}
