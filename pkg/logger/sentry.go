package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"development"`
	Release     string `env:"SENTRY_RELEASE"`
}

// NewWithSentry creates a logger that writes locally and reports errors to
// Sentry. Warnings are kept as Sentry logs for context; errors become issues.
// Without a DSN, or if Sentry fails to initialize, it behaves like New.
func NewWithSentry(cfg SentryConfig, opts ...Option) *slog.Logger {
	c := newConfig(opts...)
	local := c.handler()

	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(local, c.extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(local, c.extractors...))
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(Tee(local, remote), c.extractors...))
}
