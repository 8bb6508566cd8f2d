package utils

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// L is the base logger. Handlers should use WithCtx so lines carry the request id.
var L = slog.Default()

type loggerKey struct{}

// InitLogger builds the base logger: JSON in production, text otherwise
func InitLogger(env string) *slog.Logger {
	L = NewLogger(os.Stdout, env)
	slog.SetDefault(L)
	return L
}

func NewLogger(w io.Writer, env string) *slog.Logger {
	switch env {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// WithCtx returns the per-request logger stored in ctx, or the base logger
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a per-request logger in ctx
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}
