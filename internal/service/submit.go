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

// SubmitterOptions groups dependencies for Submitter.
type SubmitterOptions struct {
	API     core.PredictionAPI
	Logger  *slog.Logger
	Metrics statsd.Sink
	Hooks   Hooks
}

// Submitter validates transactions locally and submits them for analysis.
// Submission debits the account the moment the server accepts it, so a
// Submitter never retries: a failed call surfaces as an error and nothing
// else happens.
type Submitter struct {
	api     core.PredictionAPI
	logger  *slog.Logger
	metrics statsd.Sink
	hooks   Hooks
}

// NewSubmitter constructs a Submitter.
func NewSubmitter(opts SubmitterOptions) (*Submitter, error) {
	if opts.API == nil {
		return nil, errors.New("API is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Submitter{
		api:     opts.API,
		logger:  logger.With("component", "submitter"),
		metrics: opts.Metrics,
		hooks:   opts.Hooks,
	}, nil
}

// MustNewSubmitter is like NewSubmitter but panics on error.
func MustNewSubmitter(opts SubmitterOptions) *Submitter {
	s, err := NewSubmitter(opts)
	if err != nil {
		panic(err)
	}
	return s
}

// Submit validates tx and creates an analysis job for it. Validation runs
// before anything touches the wire, so an incomplete transaction costs
// nothing. On success the returned prediction carries the job id to poll
// and the credits the submission cost.
func (s *Submitter) Submit(ctx context.Context, tx model.Transaction) (*model.Prediction, error) {
	start := time.Now()

	if err := tx.Validate(); err != nil {
		var missing *model.MissingFieldError
		if errors.As(err, &missing) {
			return nil, apperrors.ValidationField(missing.Field, err.Error())
		}
		return nil, apperrors.Wrap(err, apperrors.KindValidation, "invalid transaction")
	}

	pred, err := s.api.CreatePrediction(ctx, model.NewPredictRequest(tx))
	metrics.EmitSubmit(s.metrics, metrics.SubmitMetric{
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "submit failed",
			"transaction_id", tx.ID(), "error", err)
		s.hooks.failed(tx.ID(), err)
		return nil, err
	}
	if pred.JobID == "" {
		err := apperrors.Unknown("service accepted the submission but returned no job id")
		s.hooks.failed(tx.ID(), err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "submitted",
		"transaction_id", tx.ID(), "job_id", pred.JobID, "cost", pred.Cost)
	s.hooks.submitted(pred)
	return pred, nil
}
