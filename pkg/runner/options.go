package runner

import (
	"log/slog"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithMaxInputSize overrides DefaultMaxInputSize for this runner.
func WithMaxInputSize(n int) Option {
	return func(r *Runner) {
		r.MaxInputSize = n
	}
}

// WithoutSignals disables SIGINT/SIGTERM handling, for embedding and tests.
func WithoutSignals() Option {
	return func(r *Runner) {
		r.noSignals = true
	}
}
