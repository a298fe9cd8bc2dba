package config

import "strings"

// AuthConfig groups credential configuration. A static bearer token takes
// precedence; otherwise username and password drive a password-grant login
// against the service. Leaving everything unset runs the client anonymously,
// which fails on the first authenticated operation.
type AuthConfig struct {
	// Token is a pre-issued bearer token.
	Token string `env:"FRAUDDESK_AUTH_TOKEN"`

	// Username for password-grant login.
	Username string `env:"FRAUDDESK_USERNAME"`

	// Password for password-grant login.
	Password string `env:"FRAUDDESK_PASSWORD"`
}

// Sanitize normalises credential values. The password is left untouched;
// everything else can safely lose surrounding whitespace.
func (c *AuthConfig) Sanitize() {
	c.Token = strings.TrimSpace(c.Token)
	c.Username = strings.TrimSpace(c.Username)
}
