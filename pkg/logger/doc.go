// Package logger builds log/slog loggers with context extraction and
// optional Sentry reporting.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithLevel(logger.ParseLevel(os.Getenv("LOG_LEVEL"))),
//		logger.WithExtractors(logger.FromContext(requestIDKey{}, "request_id")),
//	)
//	log.InfoContext(ctx, "posts listed", slog.Int("count", 10))
//	// {"level":"INFO","msg":"posts listed","count":10,"request_id":"01J..."}
//
// Output goes to stderr by default so command output on stdout stays clean.
//
// # Sentry
//
//	log := logger.NewWithSentry(logger.SentryConfig{DSN: os.Getenv("SENTRY_DSN")})
//
// Errors create Sentry issues, warnings are stored as logs. An empty DSN
// falls back to local logging only.
//
// # Library Default
//
// Components that accept a logger default to [NewNope], which discards output.
package logger
