package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frauddesk/frauddesk-cli/config"
	"github.com/frauddesk/frauddesk-cli/internal/api"
	"github.com/frauddesk/frauddesk-cli/internal/auth"
	"github.com/frauddesk/frauddesk-cli/internal/observability/statsd"
)

// Container holds the wired client stack shared by all commands.
type Container struct {
	Config  config.AppConfig
	Logger  *slog.Logger
	Metrics statsd.Sink // nil when metrics are disabled
	API     *api.Client

	statsdClient *statsd.Client
}

// Build loads configuration, initializes logging and wires the client stack.
func Build(ctx context.Context) (*Container, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := InitLogger(cfg.Observability.Log)
	return BuildWithConfig(ctx, cfg, logger)
}

// BuildWithConfig wires the client stack from an already loaded configuration.
func BuildWithConfig(ctx context.Context, cfg config.AppConfig, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	statsdClient := buildMetrics(logger, cfg.Observability.Metrics)
	var sink statsd.Sink
	if statsdClient != nil {
		sink = statsdClient
	}

	tokens, err := auth.TokenSource(ctx, auth.Credentials{
		Token:    cfg.Auth.Token,
		Username: cfg.Auth.Username,
		Password: cfg.Auth.Password,
	}, auth.SourceOptions{BaseURL: cfg.API.BaseURL})
	if err != nil {
		return nil, fmt.Errorf("configure credentials: %w", err)
	}

	client, err := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		Tokens:    tokens,
		UserAgent: cfg.API.UserAgent,
		Logger:    logger,
		Metrics:   sink,
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Metrics:      sink,
		API:          client,
		statsdClient: statsdClient,
	}, nil
}

// Close releases resources held by the container.
func (c *Container) Close() {
	if c.statsdClient == nil {
		return
	}
	if err := c.statsdClient.Close(); err != nil {
		c.Logger.Warn("close statsd client", "error", err)
	}
}

// buildMetrics configures the metrics sink. Metrics are best-effort: a
// failed statsd setup logs and degrades to no emission rather than stopping
// the client.
func buildMetrics(logger *slog.Logger, cfg config.MetricsConfig) *statsd.Client {
	if !cfg.IsEnabled() {
		return nil
	}

	client, err := statsd.NewClient(statsd.Config{
		Enabled:    true,
		Address:    cfg.StatsdAddress,
		Prefix:     "frauddesk",
		Logger:     logger,
		GlobalTags: cfg.GlobalTags,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}
