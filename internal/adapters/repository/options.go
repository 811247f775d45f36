package repository

import "time"

// Option applies a configuration option to a store.
type Option func(*options)

type options struct {
	now         func() time.Time
	busyTimeout time.Duration
}

func defaultOptions() options {
	return options{
		now:         time.Now,
		busyTimeout: 5 * time.Second,
	}
}

// WithClock sets the clock used to stamp CreatedAt on append.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithBusyTimeout sets how long SQLite waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.busyTimeout = d
		}
	}
}
