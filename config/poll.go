package config

import "time"

const (
	defaultPollBaseDelay  = 2 * time.Second
	defaultPollMaxDelay   = 10 * time.Second
	defaultPollErrorDelay = 5 * time.Second
	defaultPollMaxRetries = 3
)

// PollConfig contains the watch schedule configuration.
type PollConfig struct {
	// PendingBaseDelay is the wait after the first pending observation.
	PendingBaseDelay time.Duration `env:"FRAUDDESK_POLL_BASE_DELAY" envDefault:"2s"`

	// PendingMaxDelay caps the growing pending delay.
	PendingMaxDelay time.Duration `env:"FRAUDDESK_POLL_MAX_DELAY" envDefault:"10s"`

	// ErrorRetryDelay is the fixed wait after a transient server failure.
	ErrorRetryDelay time.Duration `env:"FRAUDDESK_POLL_ERROR_RETRY_DELAY" envDefault:"5s"`

	// MaxErrorRetries bounds consecutive error retries before a watch gives up.
	MaxErrorRetries int `env:"FRAUDDESK_POLL_MAX_ERROR_RETRIES" envDefault:"3"`
}

// Sanitize clamps nonsense schedule values back to the defaults.
func (c *PollConfig) Sanitize() {
	if c.PendingBaseDelay <= 0 {
		c.PendingBaseDelay = defaultPollBaseDelay
	}
	if c.PendingMaxDelay <= 0 {
		c.PendingMaxDelay = defaultPollMaxDelay
	}
	if c.PendingMaxDelay < c.PendingBaseDelay {
		c.PendingMaxDelay = c.PendingBaseDelay
	}
	if c.ErrorRetryDelay <= 0 {
		c.ErrorRetryDelay = defaultPollErrorDelay
	}
	if c.MaxErrorRetries <= 0 {
		c.MaxErrorRetries = defaultPollMaxRetries
	}
}
