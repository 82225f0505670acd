package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Option configures a logger built by New or NewWithSentry.
type Option func(*config)

type config struct {
	output     io.Writer
	level      slog.Level
	text       bool
	extractors []ContextExtractor
}

func newConfig(opts ...Option) *config {
	cfg := &config{output: os.Stderr, level: slog.LevelInfo}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithLevel sets the minimum level. Default: info.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithOutput sets the destination. Default: os.Stderr, so that command
// output on stdout stays machine-readable.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithText switches from JSON to logfmt-style text output.
func WithText() Option {
	return func(c *config) {
		c.text = true
	}
}

// WithExtractors adds context extractors applied on every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(c *config) {
		c.extractors = append(c.extractors, extractors...)
	}
}

// New creates a structured logger.
func New(opts ...Option) *slog.Logger {
	cfg := newConfig(opts...)
	return slog.New(NewLogHandlerDecorator(cfg.handler(), cfg.extractors...))
}

func (c *config) handler() slog.Handler {
	hopts := &slog.HandlerOptions{Level: c.level}
	if c.text {
		return slog.NewTextHandler(c.output, hopts)
	}
	return slog.NewJSONHandler(c.output, hopts)
}

// ParseLevel maps debug|info|warn|error to a slog level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
