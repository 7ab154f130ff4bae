// Package poller refetches a status at a fixed interval until it reaches a
// terminal value or the caller's context ends.
package poller

import (
	"context"
	"errors"
	"time"

	"github.com/aliskhannn/picktoss-bot/internal/clock"
)

var ErrInvalidInterval = errors.New("poll interval must be positive")

// Config describes one polling loop.
type Config[T any] struct {
	Clock    clock.Clock
	Interval time.Duration

	// Fetch loads the current status.
	Fetch func(ctx context.Context) (T, error)
	// IsTerminal reports whether polling can stop.
	IsTerminal func(T) bool
	// OnUpdate receives every fetched status, terminal ones included. Optional.
	OnUpdate func(T)
	// OnError receives fetch errors; polling continues afterwards. Optional.
	OnError func(error)
}

// Watch polls until a terminal status is fetched and returns it.
// The first fetch happens one interval after the call.
// It returns ctx.Err() when the context ends first.
func Watch[T any](ctx context.Context, cfg Config[T]) (T, error) {
	var zero T

	if cfg.Interval <= 0 {
		return zero, ErrInvalidInterval
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System()
	}

	ticker := cfg.Clock.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-ticker.C():
		}

		status, err := cfg.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return zero, ctx.Err()
			}
			if cfg.OnError != nil {
				cfg.OnError(err)
			}
			continue
		}

		if cfg.OnUpdate != nil {
			cfg.OnUpdate(status)
		}
		if cfg.IsTerminal(status) {
			return status, nil
		}
	}
}
