package core

import (
	"context"

	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
)

// This file contains the client's port definitions (hexagonal architecture).
// The service layer depends on these interfaces, not on the HTTP transport
// directly, so tests can substitute scripted fakes.

// PredictionAPI defines the contract with the fraud analysis service.
type PredictionAPI interface {
	// CreatePrediction submits a transaction envelope for analysis. Submission
	// debits the account, so callers must not retry on failure.
	CreatePrediction(ctx context.Context, req *model.PredictRequest) (*model.Prediction, error)
	// GetPrediction fetches the current state of a prediction job.
	GetPrediction(ctx context.Context, jobID string) (*model.Prediction, error)
	// ListPredictions pages through the caller's past predictions.
	ListPredictions(ctx context.Context, skip, limit int) (*model.PredictionHistory, error)
	// Balance reads the current credit balance.
	Balance(ctx context.Context) (*model.Balance, error)
	// TopUp credits the account.
	TopUp(ctx context.Context, req *model.TopUpRequest) (*model.TopUpReceipt, error)
}
