package core

import (
	"context"
	"time"
)

// Clock provides time observation and context-aware waiting that can be
// substituted for testing. All scheduling delays in the client go through
// Sleep; nothing calls time.Sleep directly, so tests run on virtual time.
type Clock interface {
	// Now returns the current time
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in that case
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock implements Clock using real system timers.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep waits for d unless ctx is canceled first.
func (SystemClock) Sleep(ctx context.Context, d time.Duration) error {
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
