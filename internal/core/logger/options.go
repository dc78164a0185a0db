package logger

import (
	"io"
	"log/slog"
)

// Format selects the slog handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type config struct {
	level  slog.Level
	output io.Writer
	format Format
}

// Option configures a Logger built by New.
type Option func(*config)

// WithLevel sets the minimum level that is emitted.
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithOutput redirects log output.
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithFormat selects text or JSON records.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithDebug enables debug records, which include one line per rename.
func WithDebug() Option {
	return WithLevel(slog.LevelDebug)
}

// WithQuiet keeps only warnings and errors.
func WithQuiet() Option {
	return WithLevel(slog.LevelWarn)
}
