package config

import (
	"strings"
	"time"
)

const (
	defaultAPIBaseURL = "http://localhost:8000"
	defaultAPITimeout = 30 * time.Second
	defaultUserAgent  = "frauddesk-cli"
)

// APIConfig contains the analysis service endpoint configuration.
type APIConfig struct {
	// BaseURL is the root URL of the fraud analysis service.
	BaseURL string `env:"FRAUDDESK_API_URL" envDefault:"http://localhost:8000"`

	// Timeout bounds every single API call. The watch loop issues many calls;
	// this is per call, not per watch.
	Timeout time.Duration `env:"FRAUDDESK_API_TIMEOUT" envDefault:"30s"`

	// UserAgent is sent on every request.
	UserAgent string `env:"FRAUDDESK_USER_AGENT" envDefault:"frauddesk-cli"`
}

// Sanitize applies guardrails to API configuration values.
func (c *APIConfig) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultAPIBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultAPITimeout
	}
	c.UserAgent = strings.TrimSpace(c.UserAgent)
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}
