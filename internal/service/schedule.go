package service

import (
	"math"
	"time"
)

// Schedule defaults. The pending schedule grows geometrically so a job that
// finishes fast is observed fast, while a slow one stops hammering the
// service; the error schedule stays flat because a struggling backend gains
// nothing from faster or slower probing.
const (
	defaultPendingBaseDelay = 2 * time.Second
	defaultPendingMaxDelay  = 10 * time.Second
	defaultErrorRetryDelay  = 5 * time.Second
	defaultMaxErrorRetries  = 3

	pendingBackoffFactor = 1.5
)

// PollConfig tunes the poller's schedules. Zero values select the defaults.
type PollConfig struct {
	// PendingBaseDelay is the wait after the first pending observation.
	PendingBaseDelay time.Duration
	// PendingMaxDelay caps the growing pending delay.
	PendingMaxDelay time.Duration
	// ErrorRetryDelay is the fixed wait after a server_internal failure.
	ErrorRetryDelay time.Duration
	// MaxErrorRetries bounds consecutive error retries before abandoning.
	MaxErrorRetries int
}

func (c PollConfig) withDefaults() PollConfig {
	if c.PendingBaseDelay <= 0 {
		c.PendingBaseDelay = defaultPendingBaseDelay
	}
	if c.PendingMaxDelay <= 0 {
		c.PendingMaxDelay = defaultPendingMaxDelay
	}
	if c.PendingMaxDelay < c.PendingBaseDelay {
		c.PendingMaxDelay = c.PendingBaseDelay
	}
	if c.ErrorRetryDelay <= 0 {
		c.ErrorRetryDelay = defaultErrorRetryDelay
	}
	if c.MaxErrorRetries <= 0 {
		c.MaxErrorRetries = defaultMaxErrorRetries
	}
	return c
}

// pendingDelay returns the wait scheduled after the nth pending observation
// (0-based): base * 1.5^n, capped at PendingMaxDelay.
func (c PollConfig) pendingDelay(attempt int) time.Duration {
	if attempt <= 0 {
		return c.PendingBaseDelay
	}
	d := float64(c.PendingBaseDelay) * math.Pow(pendingBackoffFactor, float64(attempt))
	if d >= float64(c.PendingMaxDelay) {
		return c.PendingMaxDelay
	}
	return time.Duration(d)
}
