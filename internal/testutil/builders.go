package testutil

import (
	"time"

	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
)

// TransactionBuilder provides a fluent interface for building test
// transactions.
type TransactionBuilder struct {
	tx model.Transaction
}

// NewTransaction creates a TransactionBuilder with every required field set.
func NewTransaction() *TransactionBuilder {
	return &TransactionBuilder{tx: model.Transaction{
		"id":             "T-1001",
		"amount":         125.50,
		"origin_account": "ACC-001",
		"dest_account":   "ACC-002",
	}}
}

// WithID sets the transaction id.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.tx["id"] = id
	return b
}

// WithAmount sets the transaction amount.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	b.tx["amount"] = amount
	return b
}

// WithField sets an arbitrary field.
func (b *TransactionBuilder) WithField(key string, value any) *TransactionBuilder {
	b.tx[key] = value
	return b
}

// WithoutField removes a field.
func (b *TransactionBuilder) WithoutField(key string) *TransactionBuilder {
	delete(b.tx, key)
	return b
}

// Build returns the constructed transaction.
func (b *TransactionBuilder) Build() model.Transaction {
	return b.tx
}

// PredictionBuilder provides a fluent interface for building Prediction
// payloads the way the service reports them.
type PredictionBuilder struct {
	p *model.Prediction
}

// NewPrediction creates a PredictionBuilder for a pending job with sensible
// defaults.
func NewPrediction() *PredictionBuilder {
	return &PredictionBuilder{p: &model.Prediction{
		JobID:  "job-0001",
		Status: model.StatusPending,
		Cost:   10,
	}}
}

// WithJobID sets the job id.
func (b *PredictionBuilder) WithJobID(id string) *PredictionBuilder {
	b.p.JobID = id
	return b
}

// WithStatus sets the status without touching the result.
func (b *PredictionBuilder) WithStatus(status model.Status) *PredictionBuilder {
	b.p.Status = status
	return b
}

// WithCost sets the credit cost.
func (b *PredictionBuilder) WithCost(cost float64) *PredictionBuilder {
	b.p.Cost = cost
	return b
}

// WithCreatedAt sets the creation timestamp.
func (b *PredictionBuilder) WithCreatedAt(t time.Time) *PredictionBuilder {
	ts := model.Timestamp{Time: t}
	b.p.CreatedAt = &ts
	return b
}

// WithResult sets the result payload.
func (b *PredictionBuilder) WithResult(r *model.FraudResult) *PredictionBuilder {
	b.p.Result = r
	return b
}

// Completed marks the job completed with a verdict.
func (b *PredictionBuilder) Completed(isFraud bool, probability float64) *PredictionBuilder {
	label := "legitimate"
	if isFraud {
		label = "fraud"
	}
	b.p.Status = model.StatusCompleted
	b.p.Result = &model.FraudResult{
		Prediction:       label,
		IsFraud:          isFraud,
		FraudProbability: probability,
		Confidence:       0.9,
	}
	return b
}

// Failed marks the job failed with an error description.
func (b *PredictionBuilder) Failed(message string) *PredictionBuilder {
	b.p.Status = model.StatusFailed
	b.p.Result = &model.FraudResult{Error: message}
	return b
}

// NonChargeable flags the result as refunded by the server.
func (b *PredictionBuilder) NonChargeable() *PredictionBuilder {
	if b.p.Result == nil {
		b.p.Result = &model.FraudResult{}
	}
	b.p.Result.Chargeable = BoolPtr(false)
	return b
}

// Build returns the constructed prediction.
func (b *PredictionBuilder) Build() *model.Prediction {
	return b.p
}
