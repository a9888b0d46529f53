package debug

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// NewLogger creates the diagnostics logger. Everything goes to w, which is
// stderr for the CLI so that CSV written to stdout stays clean.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !colorable(w),
	}))
}

func colorable(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// Timing logs the start of operation and returns a func logging its
// completion with the elapsed time.
func Timing(logger *slog.Logger, operation string) func() {
	start := time.Now()
	logger.Debug("starting", "operation", operation)

	return func() {
		logger.Debug("completed", "operation", operation, "took", time.Since(start).Round(time.Millisecond))
	}
}
