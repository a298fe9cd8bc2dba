package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/frauddesk/frauddesk-cli/internal/core"
	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
)

// refundSettleDelay covers the window where a server-side refund is recorded
// slightly after the job row itself goes terminal.
const refundSettleDelay = 1 * time.Second

// ReconcilerOptions groups dependencies for Reconciler.
type ReconcilerOptions struct {
	// Notify is called, possibly from a background goroutine, whenever the
	// cached account balance should be re-read. Required.
	Notify func()
	// Clock drives the delayed signal; defaults to the system clock.
	Clock core.Clock
	// RefundDelay overrides the refund settle window; defaults to 1s.
	RefundDelay time.Duration
	Logger      *slog.Logger
}

// Reconciler keeps the consumer's balance view in step with the server after
// terminal transitions. Every terminal job triggers one immediate signal; a
// failed or non-chargeable job triggers one more after the refund settles.
type Reconciler struct {
	notify func()
	clock  core.Clock
	delay  time.Duration
	logger *slog.Logger

	wg sync.WaitGroup
}

// NewReconciler constructs a Reconciler.
func NewReconciler(opts ReconcilerOptions) (*Reconciler, error) {
	if opts.Notify == nil {
		return nil, errors.New("Notify is required")
	}

	clock := opts.Clock
	if clock == nil {
		clock = core.SystemClock{}
	}
	delay := opts.RefundDelay
	if delay <= 0 {
		delay = refundSettleDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Reconciler{
		notify: opts.Notify,
		clock:  clock,
		delay:  delay,
		logger: logger.With("component", "reconciler"),
	}, nil
}

// TerminalReached fires the immediate refresh signal and, when a refund is
// expected, schedules exactly one delayed follow-up. The follow-up runs on
// its own goroutine so the watch loop is never held up; canceling ctx
// suppresses it.
func (r *Reconciler) TerminalReached(ctx context.Context, pred *model.Prediction) {
	r.notify()

	if !refundExpected(pred) {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.clock.Sleep(ctx, r.delay); err != nil {
			r.logger.DebugContext(ctx, "refund refresh suppressed",
				"job_id", pred.JobID, "error", err)
			return
		}
		r.notify()
	}()
}

// Wait blocks until all scheduled delayed signals have run or been
// suppressed. Call on shutdown so refund refreshes are not lost.
func (r *Reconciler) Wait() {
	r.wg.Wait()
}

// refundExpected reports whether the terminal payload implies the server will
// credit the account back: a failed job, or a completed one whose result the
// server flagged as non-chargeable.
func refundExpected(p *model.Prediction) bool {
	if p == nil {
		return false
	}
	if p.Status == model.StatusFailed {
		return true
	}
	return p.Status == model.StatusCompleted && p.Result.NonChargeable()
}
