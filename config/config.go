package config

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Analysis service endpoint configuration
//   - auth.go: Credential configuration
//   - poll.go: Watch schedule configuration
//   - observability.go: Logging and metrics configuration
type AppConfig struct {
	// API endpoint configuration
	API APIConfig

	// Credential configuration
	Auth AuthConfig

	// Watch schedule configuration
	Poll PollConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.Auth.Sanitize()
	c.Poll.Sanitize()
	c.Observability.Sanitize()
}
