package cascade

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// attribute formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the active logger. cascade itself is single-threaded, but
// tools such as cascadecheck sweep several heights from separate goroutines.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by cascade and its sub-packages
// (stage included). By default nothing is logged. SetLogger is safe for
// concurrent use. Pass nil to restore the silent default.
//
// Levels used:
//   - [slog.LevelDebug]: per-frame resolve statistics (host debug mode)
//   - [slog.LevelInfo]: zone map rebuilds
//   - [slog.LevelWarn]: recovered viewport samples, layout fallback
//
// Example:
//
//	// Warnings and rebuilds to stderr:
//	cascade.SetLogger(slog.Default())
//
//	// Per-frame stats as well, e.g. with stage debug mode:
//	cascade.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
