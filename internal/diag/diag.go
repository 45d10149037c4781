// Package diag provides an injectable diagnostics sink so library code
// never touches process-wide logging state.
package diag

import "log/slog"

// Sink receives observational diagnostics. Implementations must not
// influence control flow of the caller.
type Sink interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nop struct{}

func (nop) Info(string, ...any) {}
func (nop) Warn(string, ...any) {}

// Nop returns a sink that discards everything. It is the default for
// library use.
func Nop() Sink { return nop{} }

type slogSink struct {
	l *slog.Logger
}

// NewSlog adapts a slog.Logger into a Sink. A nil logger uses
// slog.Default.
func NewSlog(l *slog.Logger) Sink {
	if l == nil {
		l = slog.Default()
	}
	return slogSink{l: l}
}

func (s slogSink) Info(msg string, args ...any) { s.l.Info(msg, args...) }
func (s slogSink) Warn(msg string, args ...any) { s.l.Warn(msg, args...) }
