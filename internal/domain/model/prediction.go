package model

// Status represents the lifecycle state of a prediction job. Transitions are
// append-only: pending moves to exactly one of completed or failed and never
// back.
type Status string

const (
	// StatusPending indicates the job is queued or running on a worker.
	StatusPending Status = "pending"
	// StatusCompleted indicates the job finished and carries a fraud verdict.
	StatusCompleted Status = "completed"
	// StatusFailed indicates the job failed; the result carries an error description.
	StatusFailed Status = "failed"
)

// Valid returns true if the Status is valid.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted || s == StatusFailed
}

// Terminal returns true once the status can no longer change.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Prediction represents a fraud-analysis job as reported by the service.
type Prediction struct {
	JobID       string       `json:"job_id"`
	Status      Status       `json:"status"`
	Cost        float64      `json:"cost"`
	Result      *FraudResult `json:"result,omitempty"`
	CreatedAt   *Timestamp   `json:"created_at,omitempty"`
	CompletedAt *Timestamp   `json:"completed_at,omitempty"`
}

// FraudResult is the verdict payload attached to a terminal prediction.
// Completed jobs carry the scoring fields; failed jobs carry Error. Unknown
// extra fields from newer server versions are tolerated and dropped.
type FraudResult struct {
	Prediction       string     `json:"prediction,omitempty"`
	IsFraud          bool       `json:"is_fraud"`
	FraudProbability float64    `json:"fraud_probability"`
	Confidence       float64    `json:"confidence"`
	TransactionID    string     `json:"transaction_id,omitempty"`
	ProcessingTime   float64    `json:"processing_time,omitempty"`
	WorkerID         string     `json:"worker_id,omitempty"`
	Timestamp        *Timestamp `json:"timestamp,omitempty"`
	// Chargeable is the server's declaration of whether the job consumed
	// credits. Absent means chargeable; only an explicit false marks the job
	// as refunded.
	Chargeable *bool  `json:"chargeable,omitempty"`
	Error      string `json:"error,omitempty"`
}

// NonChargeable reports whether the server explicitly flagged the result as
// not consuming credits.
func (r *FraudResult) NonChargeable() bool {
	return r != nil && r.Chargeable != nil && !*r.Chargeable
}

// PredictionHistory is a page of the caller's past predictions.
type PredictionHistory struct {
	Predictions []Prediction `json:"predictions"`
}
