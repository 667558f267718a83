// Package logger provides a structured, levelled logger built on log/slog.
//
// The logging middleware stores a per-request logger (pre-tagged with the
// request_id) in the request context; WithCtx retrieves it so every log
// line from a handler or service is automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order confirmed", "order_id", order.ID)
//	// → time=... level=INFO msg="order confirmed" request_id=a1b2c3d4 order_id=17
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/ashrith-07/campus-bites-sub000/config"
)

var L *slog.Logger

func init() {
	Setup()
}

// Setup (re)builds the package logger from config. In production the
// output is JSON for log aggregators; elsewhere it is human-readable
// text at debug level. When MONGO_LOG_URI is configured, records are
// additionally fanned out to the asynchronous MongoDB sink.
func Setup() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	if uri := config.MongoLogURI(); uri != "" {
		if mh, err := NewMongoHandler(uri, config.MongoLogDatabase(), "logs"); err == nil {
			handler = NewMultiHandler(handler, mh)
		} else {
			slog.Warn("logger: mongo sink disabled", "error", err)
		}
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the per-request logger stored in ctx by the logging
// middleware, or the base logger when none is present.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// Inject stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the logging middleware — not usually needed in application code.
func Inject(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// Debug logs at DEBUG level on the base logger.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level on the base logger.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level on the base logger.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level on the base logger.
func Error(msg string, args ...any) { L.Error(msg, args...) }
