// Package service implements the client side of the analysis job lifecycle:
// submitting transactions, watching jobs until they settle and keeping the
// consumer's balance view reconciled afterwards.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/frauddesk/frauddesk-cli/internal/core"
	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
	apperrors "github.com/frauddesk/frauddesk-cli/internal/errors"
	"github.com/frauddesk/frauddesk-cli/internal/observability/metrics"
	"github.com/frauddesk/frauddesk-cli/internal/observability/statsd"
)

// PollerOptions groups dependencies for Poller.
type PollerOptions struct {
	API     core.PredictionAPI
	Clock   core.Clock
	Logger  *slog.Logger
	Metrics statsd.Sink
	Hooks   Hooks
	Config  PollConfig
	// Reconciler receives terminal transitions. When nil, one is built that
	// signals Hooks.OnBalanceStale.
	Reconciler *Reconciler
}

// Poller watches submitted jobs until they reach a terminal status. Status
// queries are read-only and cost nothing, so unlike submissions they may be
// retried; only server_internal failures are considered transient enough to
// retry, everything else abandons the watch.
type Poller struct {
	api        core.PredictionAPI
	clock      core.Clock
	logger     *slog.Logger
	metrics    statsd.Sink
	hooks      Hooks
	cfg        PollConfig
	reconciler *Reconciler
}

// NewPoller constructs a Poller.
func NewPoller(opts PollerOptions) (*Poller, error) {
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

	reconciler := opts.Reconciler
	if reconciler == nil {
		var err error
		reconciler, err = NewReconciler(ReconcilerOptions{
			Notify: opts.Hooks.balanceStale,
			Clock:  clock,
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
	}

	return &Poller{
		api:        opts.API,
		clock:      clock,
		logger:     logger.With("component", "poller"),
		metrics:    opts.Metrics,
		hooks:      opts.Hooks,
		cfg:        opts.Config.withDefaults(),
		reconciler: reconciler,
	}, nil
}

// MustNewPoller is like NewPoller but panics on error.
func MustNewPoller(opts PollerOptions) *Poller {
	p, err := NewPoller(opts)
	if err != nil {
		panic(err)
	}
	return p
}

// Watch polls jobID until it reaches a terminal status and returns the final
// prediction. A failed job is still a successful watch: the job's own error
// travels inside the result, while a non-nil error from Watch means the
// outcome could not be determined at all. Canceling ctx stops the watch
// between queries and returns the context's error.
func (p *Poller) Watch(ctx context.Context, jobID string) (*model.Prediction, error) {
	if jobID == "" {
		return nil, apperrors.ValidationField("job_id", "job id must not be empty")
	}

	w := &watch{
		poller: p,
		jobID:  jobID,
		logger: p.logger.With("job_id", jobID),
		start:  p.clock.Now(),
	}
	return w.run(ctx)
}

// Wait blocks until background reconciliation work has drained. Call on
// shutdown after all watches returned.
func (p *Poller) Wait() {
	p.reconciler.Wait()
}

// watch carries the mutable state of a single Watch call.
type watch struct {
	poller *Poller
	jobID  string
	logger *slog.Logger
	start  time.Time

	pendingObservations int
	errorRetries        int
	totalRetries        int
	queries             int
}

func (w *watch) run(ctx context.Context) (*model.Prediction, error) {
	p := w.poller

	for {
		pred, err := p.api.GetPrediction(ctx, w.jobID)
		w.queries++

		// Once the context is gone the watch ends quietly, whatever the
		// query returned: no hooks, no metrics.
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}

		if err != nil {
			retry, failure := w.onQueryFailure(ctx, err)
			if !retry {
				return nil, failure
			}
			if serr := p.clock.Sleep(ctx, p.cfg.ErrorRetryDelay); serr != nil {
				return nil, serr
			}
			continue
		}

		w.errorRetries = 0

		if !pred.Status.Valid() {
			return nil, w.abandon(ctx, apperrors.Unknownf(
				"service reported unrecognized status %q", pred.Status))
		}
		if pred.Status.Terminal() {
			w.finish(ctx, pred)
			return pred, nil
		}

		// Still pending: back off a little further each time.
		metrics.EmitPollAttempt(p.metrics, metrics.PollAttemptMetric{
			Outcome: metrics.PollOutcomePending,
		})
		p.hooks.status(pred)

		delay := p.cfg.pendingDelay(w.pendingObservations)
		w.pendingObservations++
		w.logger.DebugContext(ctx, "job still pending", "next_check_in", delay)
		if serr := p.clock.Sleep(ctx, delay); serr != nil {
			return nil, serr
		}
	}
}

// onQueryFailure decides whether a failed status query is retried. Only
// server_internal failures are, and only MaxErrorRetries times in a row; the
// returned error is the one to surface when retry is false.
func (w *watch) onQueryFailure(ctx context.Context, err error) (retry bool, failure error) {
	p := w.poller

	switch {
	case apperrors.IsNotFound(err):
		return false, w.abandon(ctx, err)

	case apperrors.IsServerInternal(err):
		w.errorRetries++
		w.totalRetries++
		if w.errorRetries > p.cfg.MaxErrorRetries {
			exhausted := apperrors.Wrap(err, apperrors.KindServerInternal,
				"the analysis service is experiencing technical difficulties").
				WithStatus(apperrors.GetStatus(err))
			return false, w.abandon(ctx, exhausted)
		}

		metrics.EmitPollAttempt(p.metrics, metrics.PollAttemptMetric{
			Outcome: metrics.PollOutcomeErrorRetry,
			Err:     err,
		})
		w.logger.WarnContext(ctx, "status query failed, retrying",
			"attempt", w.errorRetries, "max_retries", p.cfg.MaxErrorRetries, "error", err)
		return true, nil

	default:
		// Timeouts, network failures, auth and anything unclassified:
		// not worth probing again.
		return false, w.abandon(ctx, err)
	}
}

func (w *watch) finish(ctx context.Context, pred *model.Prediction) {
	p := w.poller

	metrics.EmitPollAttempt(p.metrics, metrics.PollAttemptMetric{
		Outcome: metrics.PollOutcomeTerminal,
	})
	metrics.EmitWatch(p.metrics, metrics.WatchMetric{
		Outcome:  metrics.PollOutcomeTerminal,
		Duration: p.clock.Now().Sub(w.start),
		Queries:  w.queries,
		Retries:  w.totalRetries,
	})
	w.logger.InfoContext(ctx, "job settled",
		"status", pred.Status, "queries", w.queries, "cost", pred.Cost)

	p.hooks.terminal(pred)
	p.reconciler.TerminalReached(ctx, pred)
}

func (w *watch) abandon(ctx context.Context, err error) error {
	p := w.poller

	metrics.EmitPollAttempt(p.metrics, metrics.PollAttemptMetric{
		Outcome: metrics.PollOutcomeAbandoned,
		Err:     err,
	})
	metrics.EmitWatch(p.metrics, metrics.WatchMetric{
		Outcome:  metrics.PollOutcomeAbandoned,
		Duration: p.clock.Now().Sub(w.start),
		Queries:  w.queries,
		Retries:  w.totalRetries,
	})
	w.logger.ErrorContext(ctx, "watch abandoned", "queries", w.queries, "error", err)

	p.hooks.failed(w.jobID, err)
	return err
}
