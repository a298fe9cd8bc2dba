// Package testutil provides fakes and fixture builders shared by the client's
// test suites.
package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/frauddesk/frauddesk-cli/internal/core"
)

// TestingTB is the subset of testing.TB the helpers need, so they work with
// both *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

// FakeClock is a core.Clock whose sleeps return immediately while recording
// the requested durations and advancing the fake wall clock by them. Tests
// assert on the recorded schedule instead of waiting it out.
type FakeClock struct {
	// OnSleep, when set before use, runs after each recorded sleep. Tests
	// use it to cancel a context mid-schedule.
	OnSleep func(d time.Duration)

	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

// NewFakeClock creates a FakeClock starting at TestTime.
func NewFakeClock() *FakeClock {
	return &FakeClock{now: TestTime()}
}

var _ core.Clock = (*FakeClock)(nil)

// Now returns the fake wall clock time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Sleep records d, advances the fake clock by it and returns without
// blocking. The context is honored the way the real clock honors it: an
// already canceled context is reported before anything is recorded, and a
// cancellation triggered by OnSleep is reported after.
func (c *FakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	c.mu.Unlock()

	if c.OnSleep != nil {
		c.OnSleep(d)
	}
	return ctx.Err()
}

// Advance moves the fake wall clock forward without recording a sleep.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Slept returns a copy of the recorded sleep durations in order.
func (c *FakeClock) Slept() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.slept))
	copy(out, c.slept)
	return out
}

// Common pointer helper functions for tests.

// StringPtr returns a pointer to the given string value.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to the given bool value.
func BoolPtr(b bool) *bool {
	return &b
}

// Float64Ptr returns a pointer to the given float64 value.
func Float64Ptr(f float64) *float64 {
	return &f
}

// TimePtr returns a pointer to the given time value.
func TimePtr(t time.Time) *time.Time {
	return &t
}
