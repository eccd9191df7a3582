package logging

import (
	"context"
	"log/slog"

	"github.com/rs/zerolog"
)

// slogBridge satisfies slog.Handler on top of the shared zerolog logger so
// the binaries run one logging stack regardless of which API a caller speaks.
type slogBridge struct {
	zl *zerolog.Logger
}

// NewSlog bridges libraries that speak slog onto the shared zerolog logger.
func NewSlog(zl *zerolog.Logger) *slog.Logger {
	return slog.New(slogBridge{zl: zl})
}

func (b slogBridge) Enabled(context.Context, slog.Level) bool { return true }

func (b slogBridge) Handle(ctx context.Context, r slog.Record) error {
	ev := FromContext(ctx, b.zl).WithLevel(slogLevel(r.Level))
	r.Attrs(func(a slog.Attr) bool {
		flattenAttr(ev, a)
		return true
	})
	ev.Msg(r.Message)
	return nil
}

// WithAttrs folds the attrs into a derived logger up front; Handle carries no
// handler state to replay.
func (b slogBridge) WithAttrs(attrs []slog.Attr) slog.Handler {
	zc := b.zl.With()
	for _, a := range attrs {
		a.Value = a.Value.Resolve()
		zc = zc.Interface(a.Key, a.Value.Any())
	}
	child := zc.Logger()
	return slogBridge{zl: &child}
}

// Groups are not nested; keys keep their bare names.
func (b slogBridge) WithGroup(string) slog.Handler { return b }

func slogLevel(l slog.Level) zerolog.Level {
	switch {
	case l <= slog.LevelDebug:
		return zerolog.DebugLevel
	case l >= slog.LevelError:
		return zerolog.ErrorLevel
	case l >= slog.LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

func flattenAttr(ev *zerolog.Event, a slog.Attr) {
	a.Value = a.Value.Resolve()
	switch a.Value.Kind() {
	case slog.KindString:
		ev.Str(a.Key, a.Value.String())
	case slog.KindBool:
		ev.Bool(a.Key, a.Value.Bool())
	default:
		ev.Interface(a.Key, a.Value.Any())
	}
}
