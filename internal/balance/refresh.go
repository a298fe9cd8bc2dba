// Package balance maintains the consumer-side view of the account's credit
// balance. The server owns the numbers; this package only decides when to
// re-read them and hands out the last fetched value.
package balance

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/frauddesk/frauddesk-cli/internal/core"
	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
	"github.com/frauddesk/frauddesk-cli/internal/observability/metrics"
	"github.com/frauddesk/frauddesk-cli/internal/observability/statsd"
)

// RefresherOptions groups dependencies for Refresher.
type RefresherOptions struct {
	API     core.PredictionAPI
	Clock   core.Clock
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// Refresher re-reads the balance on demand and coalesces concurrent callers
// into a single request, so a burst of stale signals from parallel watches
// costs one round trip.
type Refresher struct {
	api     core.PredictionAPI
	clock   core.Clock
	logger  *slog.Logger
	metrics statsd.Sink
	group   singleflight.Group

	mu        sync.RWMutex
	last      *model.Balance
	fetchedAt time.Time
}

// NewRefresher constructs a Refresher.
func NewRefresher(opts RefresherOptions) (*Refresher, error) {
	if opts.API == nil {
		return nil, errors.New("API is required")
	}

	clock := opts.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Refresher{
		api:     opts.API,
		clock:   clock,
		logger:  logger.With("component", "balance"),
		metrics: opts.Metrics,
	}, nil
}

// MustNewRefresher is like NewRefresher but panics on error.
func MustNewRefresher(opts RefresherOptions) *Refresher {
	r, err := NewRefresher(opts)
	if err != nil {
		panic(err)
	}
	return r
}

// Refresh fetches the current balance. Callers arriving while a fetch is in
// flight share its outcome; the first caller's context governs the request.
func (r *Refresher) Refresh(ctx context.Context) (*model.Balance, error) {
	v, err, _ := r.group.Do("balance", func() (any, error) {
		b, err := r.api.Balance(ctx)
		if err != nil {
			return nil, err
		}
		r.store(ctx, b)
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Balance), nil
}

// Last returns the most recently fetched balance and when it was fetched.
// The third return is false until the first successful Refresh.
func (r *Refresher) Last() (*model.Balance, time.Time, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.last == nil {
		return nil, time.Time{}, false
	}
	snapshot := *r.last
	return &snapshot, r.fetchedAt, true
}

func (r *Refresher) store(ctx context.Context, b *model.Balance) {
	r.mu.Lock()
	r.last = b
	r.fetchedAt = r.clock.Now()
	r.mu.Unlock()

	metrics.EmitBalance(r.metrics, b.Balance)
	r.logger.DebugContext(ctx, "balance refreshed", "balance", b.Balance)
}
