package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates an slog logger at the provided level, tagged with the app name.
// Development environments get human-readable text output, everything else
// JSON. An invalid level falls back to info.
func New(appName, level string, dev bool) *slog.Logger {
	return newWithWriter(os.Stdout, appName, level, dev)
}

func newWithWriter(w io.Writer, appName, level string, dev bool) *slog.Logger {
	lvl := new(slog.LevelVar)
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if dev {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler).With(slog.String("app", appName))
}

// Discard returns a logger that drops all output. Useful for tests.
func Discard() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError})
	return slog.New(handler)
}
