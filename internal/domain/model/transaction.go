package model

import (
	"fmt"
)

// RequiredTransactionFields lists the fields every submitted transaction must
// carry, in validation order. The first missing one is the one reported.
var RequiredTransactionFields = []string{"id", "amount", "origin_account", "dest_account"}

// Transaction is the payload submitted for fraud analysis. The analysis
// service accepts arbitrary extra attributes alongside the required fields,
// so the type stays an open map rather than a closed struct.
type Transaction map[string]any

// MissingFieldError reports a required transaction field that is absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Validate checks the required-field contract. Fields are checked in
// RequiredTransactionFields order and the first absent one is returned as a
// MissingFieldError. A field present with a nil or empty-string value counts
// as missing.
func (t Transaction) Validate() error {
	for _, field := range RequiredTransactionFields {
		v, ok := t[field]
		if !ok || v == nil {
			return &MissingFieldError{Field: field}
		}
		if s, isStr := v.(string); isStr && s == "" {
			return &MissingFieldError{Field: field}
		}
	}
	return nil
}

// ID returns the transaction identifier, or "" when unset or not a string.
func (t Transaction) ID() string {
	s, _ := t["id"].(string)
	return s
}

// PredictRequest is the submit envelope the analysis service expects.
type PredictRequest struct {
	Data PredictData `json:"data"`
}

// PredictData nests the transaction under the envelope's data key.
type PredictData struct {
	Transaction Transaction `json:"transaction"`
}

// NewPredictRequest wraps a transaction into the submit envelope.
func NewPredictRequest(tx Transaction) *PredictRequest {
	return &PredictRequest{Data: PredictData{Transaction: tx}}
}
