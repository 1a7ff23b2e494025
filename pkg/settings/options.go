package settings

import (
	"log/slog"

	"github.com/joshuapare/regsettings/internal/logger"
)

type options struct {
	log    *slog.Logger
	runKey string
}

// Option configures an Accessor or a Startup.
type Option func(*options)

// WithLogger overrides the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithRunKey overrides the autostart location (relative to the User root).
func WithRunKey(path string) Option {
	return func(o *options) { o.runKey = path }
}

func buildOptions(opts []Option) options {
	o := options{runKey: RunKeyPath}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// logger returns the configured logger, or the package logger as it is at
// call time so late logger.Init calls take effect.
func (o options) logger() *slog.Logger {
	if o.log != nil {
		return o.log
	}
	return logger.L
}
