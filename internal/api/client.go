// Package api implements the HTTP transport for the fraud analysis service.
// Every exported method performs exactly one request and reports either a
// decoded body or a classified failure; retry policy lives a layer up.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/frauddesk/frauddesk-cli/internal/core"
	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
	apperrors "github.com/frauddesk/frauddesk-cli/internal/errors"
	"github.com/frauddesk/frauddesk-cli/internal/observability/metrics"
	"github.com/frauddesk/frauddesk-cli/internal/observability/statsd"
)

const (
	// DefaultTimeout bounds each call end to end. The poller's schedules are
	// calibrated against this; raising it stretches worst-case poll latency.
	DefaultTimeout = 30 * time.Second

	// maxErrorReadBytes caps how much of an error response is read at all.
	maxErrorReadBytes = 4 * 1024
	// maxErrorMessageBytes caps how much raw body is carried into a failure
	// message when the body is not the service's JSON error shape.
	maxErrorMessageBytes = 512

	defaultUserAgent = "frauddesk-cli"
)

// Config configures the API client.
type Config struct {
	// BaseURL is the analysis service root, e.g. https://frauddesk.example.com
	BaseURL string
	// Timeout bounds each call; defaults to DefaultTimeout
	Timeout time.Duration
	// HTTPClient overrides the underlying client; when nil one is built with
	// Timeout as a transport-level backstop
	HTTPClient *http.Client
	// Tokens supplies the bearer credential for calls that require auth.
	// When nil, those calls fail as auth_required without any network I/O.
	Tokens oauth2.TokenSource
	// UserAgent overrides the default User-Agent header
	UserAgent string
	Logger    *slog.Logger
	// Metrics receives per-call counters and timings; nil disables emission
	Metrics statsd.Sink
}

// Client talks to the fraud analysis service.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    oauth2.TokenSource
	userAgent string
	timeout   time.Duration
	logger    *slog.Logger
	metrics   statsd.Sink
}

var _ core.PredictionAPI = (*Client)(nil)

func resolveLogger(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}

// NewClient validates the configuration and constructs a client.
func NewClient(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, errors.New("base url is required")
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base url scheme %q", base.Scheme)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	ua := strings.TrimSpace(cfg.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}

	return &Client{
		baseURL:   base,
		http:      hc,
		tokens:    cfg.Tokens,
		userAgent: ua,
		timeout:   timeout,
		logger:    resolveLogger(cfg.Logger),
		metrics:   cfg.Metrics,
	}, nil
}

// CreatePrediction submits a transaction envelope for analysis. The server
// debits the account on acceptance, so this is never retried here or above.
func (c *Client) CreatePrediction(ctx context.Context, req *model.PredictRequest) (*model.Prediction, error) {
	var out model.Prediction
	err := c.call(ctx, callRequest{
		op:           "create_prediction",
		method:       http.MethodPost,
		path:         "/predictions/predict",
		body:         req,
		out:          &out,
		requiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPrediction fetches the current state of a prediction job.
func (c *Client) GetPrediction(ctx context.Context, jobID string) (*model.Prediction, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, apperrors.ValidationField("job_id", "job id is required")
	}
	var out model.Prediction
	err := c.call(ctx, callRequest{
		op:           "get_prediction",
		method:       http.MethodGet,
		path:         "/predictions/" + url.PathEscape(jobID),
		out:          &out,
		requiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListPredictions pages through the caller's past predictions.
func (c *Client) ListPredictions(ctx context.Context, skip, limit int) (*model.PredictionHistory, error) {
	q := url.Values{}
	if skip > 0 {
		q.Set("skip", strconv.Itoa(skip))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/predictions"
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}

	var out model.PredictionHistory
	err := c.call(ctx, callRequest{
		op:           "list_predictions",
		method:       http.MethodGet,
		path:         path,
		out:          &out,
		requiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Balance reads the current credit balance.
func (c *Client) Balance(ctx context.Context) (*model.Balance, error) {
	var out model.Balance
	err := c.call(ctx, callRequest{
		op:           "balance",
		method:       http.MethodGet,
		path:         "/balance",
		out:          &out,
		requiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// TopUp credits the account.
func (c *Client) TopUp(ctx context.Context, req *model.TopUpRequest) (*model.TopUpReceipt, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.ValidationField("amount", err.Error())
	}
	var out model.TopUpReceipt
	err := c.call(ctx, callRequest{
		op:           "topup",
		method:       http.MethodPost,
		path:         "/balance/topup",
		body:         req,
		out:          &out,
		requiresAuth: true,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// callRequest groups the parameters of a single API call.
type callRequest struct {
	op           string // stable metric label for the operation
	method       string
	path         string
	body         any
	out          any
	requiresAuth bool
}

// call runs one request end to end and emits its lifecycle metric.
func (c *Client) call(ctx context.Context, req callRequest) error {
	start := time.Now()
	err := c.do(ctx, req)
	metrics.EmitAPICall(c.metrics, metrics.APICallMetric{
		Op:       req.op,
		Duration: time.Since(start),
		Err:      err,
	})
	return err
}

func (c *Client) do(ctx context.Context, req callRequest) error {
	token, err := c.credential(req.requiresAuth)
	if err != nil {
		return err
	}

	payload, err := encodeBody(req.method, req.body)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL.String()+req.path, payload)
	if err != nil {
		return apperrors.Wrap(err, apperrors.KindValidation, "build request")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		classified := classifyTransportError(err)
		c.logger.DebugContext(ctx, "api call failed",
			"op", req.op, "kind", classified.Kind, "error", err)
		return classified
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.DebugContext(ctx, "close response body", "op", req.op, "error", cerr)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		classified := errorFromResponse(resp)
		c.logger.DebugContext(ctx, "api call rejected",
			"op", req.op, "status", resp.StatusCode, "kind", classified.Kind)
		return classified
	}

	if req.out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorReadBytes))
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(req.out); err != nil {
		// The server claimed success but sent something unparseable.
		return apperrors.Wrap(err, apperrors.KindUnknown, "decode response body").
			WithStatus(resp.StatusCode)
	}
	return nil
}

// credential resolves the bearer token for an auth-required call. A missing
// token source fails before any network I/O.
func (c *Client) credential(required bool) (string, error) {
	if !required {
		return "", nil
	}
	if c.tokens == nil {
		return "", apperrors.AuthRequired("no credentials configured")
	}
	tok, err := c.tokens.Token()
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindAuthRequired, "acquire access token")
	}
	return tok.AccessToken, nil
}

// encodeBody serializes the request body for methods that carry one. A body
// that cannot be marshaled is a local validation failure; nothing is sent.
func encodeBody(method string, body any) (io.Reader, error) {
	if body == nil || !methodHasBody(method) {
		return nil, nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.KindValidation, "encode request body")
	}
	return bytes.NewReader(raw), nil
}

func methodHasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// errorFromResponse turns a non-2xx response into a classified error. The
// display message is the service's {"detail"} field when present, the raw
// body capped at maxErrorMessageBytes otherwise, or the status line when the
// body is empty.
func errorFromResponse(resp *http.Response) *apperrors.APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorReadBytes))
	return classifyStatus(resp.StatusCode, errorMessage(resp.StatusCode, raw))
}

func errorMessage(status int, raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Detail) != "" {
		return payload.Detail
	}

	body := strings.TrimSpace(string(raw))
	if body == "" {
		return fmt.Sprintf("%d %s", status, http.StatusText(status))
	}
	if len(body) > maxErrorMessageBytes {
		body = body[:maxErrorMessageBytes]
	}
	return body
}
