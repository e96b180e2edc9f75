package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/grindlemire/go-sublayout/pkg/debug"
)

// newLogger creates a logger writing to w at level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	debugLogKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

func withDebugLog(ctx context.Context) context.Context {
	return context.WithValue(ctx, debugLogKey, true)
}

// reconcilerLogger returns the debug file logger when one was requested and
// the command logger otherwise.
func reconcilerLogger(ctx context.Context) *log.Logger {
	if on, _ := ctx.Value(debugLogKey).(bool); on {
		return debug.Logger()
	}
	return loggerFromContext(ctx)
}
