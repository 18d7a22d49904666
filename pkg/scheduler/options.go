package scheduler

import (
	"log/slog"
	"time"
)

// DefaultInterval approximates one frame of a 60Hz host loop.
const DefaultInterval = 16 * time.Millisecond

// Option is a functional option for configuring a scheduler.
type Option func(*schedulerOptions)

type schedulerOptions struct {
	interval time.Duration
	logger   *slog.Logger
}

// WithInterval sets the wall-clock duration of a tick used by Run.
func WithInterval(d time.Duration) Option {
	return func(o *schedulerOptions) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithLogger sets the logger for the scheduler.
func WithLogger(logger *slog.Logger) Option {
	return func(o *schedulerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}
