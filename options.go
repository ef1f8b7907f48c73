package tarn

import (
	"context"
	"log/slog"
)

// Option customizes a pool at construction time.
type Option func(*config)

type config struct {
	ctx    context.Context
	logger *slog.Logger
}

func defaultConfig() config {
	return config{
		ctx:    context.Background(),
		logger: slog.New(discardHandler{}),
	}
}

// WithContext sets the parent context of the pool. Cancelling it stops all
// workers and resolves every pending future with the context's error.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// WithLogger sets the logger used by the pool. Logging is disabled by
// default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}
