package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Setup returns a stderr logger. format "text" selects the human-friendly
// console writer; anything else emits JSON lines.
func Setup(format string) zerolog.Logger {
	return New(os.Stderr, format)
}

// New builds the same logger as Setup on an arbitrary writer. Console output
// is colored only when w is a terminal.
func New(w io.Writer, format string) zerolog.Logger {
	if format == "text" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
			NoColor:    !isTerminal(w),
		}
	}
	return zerolog.New(w).With().Timestamp().Str("app", "bolspread").Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
