package fractal

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. It is swapped atomically so SetLogger
// may race with generators logging from pool workers.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by fractal.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by fractal:
//   - [slog.LevelDebug]: a host parameter replaced by its default (the image
//     still renders, just not with the value the user typed) and per-render
//     timings with generator name and size
//   - [slog.LevelWarn]: a budget cut to a hard limit, such as an H-tree order
//     above [MaxHTreeOrder], where the image differs from what was asked for
//
// Records carry "param", "value" and "default" or "max" attributes so a host
// can show the substitution next to the control that caused it.
//
// Example:
//
//	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Hosts under cmd/ share it this way.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// logDefault records a parameter that fell back to its default.
func logDefault(param, value string, def any) {
	Logger().Debug("fractal: invalid parameter, using default",
		"param", param, "value", value, "default", def)
}

// logClamped records a budget that was cut to its hard limit.
func logClamped(param string, value, limit int) {
	Logger().Warn("fractal: parameter clamped",
		"param", param, "value", value, "max", limit)
}
