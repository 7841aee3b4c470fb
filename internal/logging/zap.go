package logging

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dmitrijs2005/lembretes/internal/common"
)

type requestIDKey struct{}

// WithRequestID stores the request correlation id in ctx so that every
// ZapLogger call made with that context carries it.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id stored by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ZapLogger adapts a *zap.SugaredLogger to Logger.
type ZapLogger struct {
	l *zap.SugaredLogger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	return &ZapLogger{l: l.Sugar()}
}

// NewZap builds a zap logger for the given format: "json" selects the
// production config, "console" the development one.
func NewZap(format string) (*ZapLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	switch format {
	case "", "json":
		l, err = zap.NewProduction()
	case "console":
		l, err = zap.NewDevelopment()
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return NewZapLogger(l), nil
}

func (z *ZapLogger) withCtx(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.l
	}
	if id := RequestIDFrom(ctx); id != "" {
		return z.l.With(common.RequestIDHeaderName, id)
	}
	return z.l
}

func (z *ZapLogger) Debug(ctx context.Context, msg string, args ...any) {
	z.withCtx(ctx).Debugw(msg, args...)
}

func (z *ZapLogger) Info(ctx context.Context, msg string, args ...any) {
	z.withCtx(ctx).Infow(msg, args...)
}

func (z *ZapLogger) Warn(ctx context.Context, msg string, args ...any) {
	z.withCtx(ctx).Warnw(msg, args...)
}

func (z *ZapLogger) Error(ctx context.Context, msg string, args ...any) {
	z.withCtx(ctx).Errorw(msg, args...)
}

func (z *ZapLogger) With(args ...any) Logger {
	return &ZapLogger{l: z.l.With(args...)}
}

// Sync flushes buffered entries; call it before the process exits.
func (z *ZapLogger) Sync() error {
	return z.l.Sync()
}
