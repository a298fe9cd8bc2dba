package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig groups configuration that controls logging and metrics.
type ObservabilityConfig struct {
	Log     LogConfig
	Metrics MetricsConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Log.Sanitize()
	c.Metrics.Sanitize()
}

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `env:"FRAUDDESK_LOG_LEVEL" envDefault:"info"`

	// Format is "text" for humans on a terminal or "json" for machine
	// consumption.
	Format string `env:"FRAUDDESK_LOG_FORMAT" envDefault:"text"`
}

// Sanitize normalises the logging configuration, falling back to info/text
// for unrecognised values.
func (c *LogConfig) Sanitize() {
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		c.Level = "info"
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format != "json" {
		c.Format = "text"
	}
}

// SlogLevel maps the configured level onto slog's scale.
func (c *LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MetricsConfig controls emission of metrics to external sinks such as StatsD.
type MetricsConfig struct {
	Enabled       bool   `env:"FRAUDDESK_METRICS_ENABLED" envDefault:"false"`
	StatsdAddress string `env:"FRAUDDESK_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`

	// GlobalTags are attached to every emitted metric, e.g. "env:prod,team:risk".
	GlobalTags map[string]string `env:"FRAUDDESK_METRICS_TAGS" envSeparator:"," envKeyValSeparator:":"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *MetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.Enabled = false
	}
}

// IsEnabled returns true when metrics emission is active after sanitisation.
func (c *MetricsConfig) IsEnabled() bool {
	return c.Enabled && c.StatsdAddress != ""
}
