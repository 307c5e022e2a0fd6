package service

import (
	"context"
	"time"
)

// Latency is the simulated round trip of each operation
type Latency struct {
	GetAll  time.Duration
	GetByID time.Duration
	Create  time.Duration
	Update  time.Duration
	Delete  time.Duration
}

// DefaultLatency returns the timings of the mock backend
func DefaultLatency() Latency {
	return Latency{
		GetAll:  300 * time.Millisecond,
		GetByID: 200 * time.Millisecond,
		Create:  250 * time.Millisecond,
		Update:  250 * time.Millisecond,
		Delete:  200 * time.Millisecond,
	}
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
