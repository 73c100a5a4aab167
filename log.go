package mindmap

import (
	"log/slog"
	"os"
)

// log is a plain package variable (no atomic; the editor is single-threaded).
var log = slog.New(slog.NewTextHandler(os.Stderr, nil)).With("component", "mindmap")

// SetLogger replaces the logger used for diagnostics (debug invariant
// checks, rejected edits, asset fallbacks). A nil logger discards output.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	log = l
}

func logger() *slog.Logger {
	return log
}
