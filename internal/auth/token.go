// Package auth builds the bearer-token capability the transport consumes.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

// Credentials selects how the client authenticates. A static token wins when
// set; otherwise username and password drive an OAuth2 password-grant
// exchange against the service's token endpoint. All empty means anonymous.
type Credentials struct {
	Token    string
	Username string
	Password string
}

// Configured reports whether any credential material is present.
func (c Credentials) Configured() bool {
	return c.Token != "" || c.Username != "" || c.Password != ""
}

// SourceOptions configures TokenSource.
type SourceOptions struct {
	// BaseURL is the service root; the token endpoint is derived from it.
	// Required for password login, unused for static tokens.
	BaseURL    string
	HTTPClient *http.Client
}

// TokenSource builds the capability from creds. It returns nil with no error
// when no credentials are configured; the transport turns a nil source into
// an auth_required failure on the first authenticated call. The password
// exchange is lazy, so construction costs no network I/O.
func TokenSource(ctx context.Context, creds Credentials, opts SourceOptions) (oauth2.TokenSource, error) {
	if creds.Token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: creds.Token}), nil
	}
	if creds.Username == "" && creds.Password == "" {
		return nil, nil
	}
	if creds.Username == "" || creds.Password == "" {
		return nil, errors.New("username and password must both be set")
	}
	if opts.BaseURL == "" {
		return nil, errors.New("base URL is required for password login")
	}

	tokenURL, err := url.JoinPath(opts.BaseURL, "token")
	if err != nil {
		return nil, fmt.Errorf("token endpoint: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, httpClient)

	src := &passwordSource{
		ctx:      ctx,
		username: creds.Username,
		password: creds.Password,
		conf: &oauth2.Config{
			Endpoint: oauth2.Endpoint{
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
	}
	// ReuseTokenSource caches the exchanged token until it expires.
	return oauth2.ReuseTokenSource(nil, src), nil
}

// passwordSource exchanges username/password for a bearer token on first use.
type passwordSource struct {
	ctx      context.Context
	conf     *oauth2.Config
	username string
	password string
}

func (s *passwordSource) Token() (*oauth2.Token, error) {
	tok, err := s.conf.PasswordCredentialsToken(s.ctx, s.username, s.password)
	if err != nil {
		return nil, fmt.Errorf("password login: %w", err)
	}
	return tok, nil
}
