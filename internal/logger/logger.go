package logger

import (
	"io"
	"log/slog"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Init installs the default slog logger.
// Development: text format at debug level. Otherwise: JSON at info level.
// Errors are also sent to Sentry when a DSN is configured.
func Init(w io.Writer, isDev bool, sentryDSN string) {
	level := slog.LevelInfo
	if isDev {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(newHandler(w, isDev, level, sentryDSN)))
}

// InitQuiet is used by the CLI: only warnings and errors, always as text.
func InitQuiet(w io.Writer) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn})))
}

func newHandler(w io.Writer, isDev bool, level slog.Level, sentryDSN string) slog.Handler {
	var base slog.Handler
	if isDev {
		base = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		base = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}

	if sentryDSN == "" {
		return base
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              sentryDSN,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		slog.New(base).Warn("sentry disabled, init failed", "error", err)
		return base
	}

	return slogmulti.Fanout(base, slogsentry.Option{
		Level: slog.LevelError,
	}.NewSentryHandler())
}
