package territory

import (
	"context"
	"log/slog"
)

// nopHandler discards everything; Enabled is false so callers skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// logger is package wide. There is one editing session per process so no
// synchronisation is needed beyond setting it before use.
var logger = slog.New(nopHandler{})

// SetLogger configures the logger used by this package.
// By default nothing is logged. Pass nil to silence it again.
//
// Levels used:
//   - Debug: graph build stats, rejected selection attempts
//   - Warn: duplicate tile indices, repaired selections
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	logger = l
}

// Logger returns the current package logger.
func Logger() *slog.Logger {
	return logger
}
