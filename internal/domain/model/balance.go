package model

import "errors"

// Balance is the credit amount available to the caller's account.
type Balance struct {
	Balance float64 `json:"balance"`
}

// TopUpRequest asks the service to credit the caller's account.
type TopUpRequest struct {
	Amount float64 `json:"amount"`
}

// Validate rejects non-positive top-up amounts before they reach the wire,
// mirroring the server-side rule.
func (r *TopUpRequest) Validate() error {
	if r.Amount <= 0 {
		return errors.New("top-up amount must be positive")
	}
	return nil
}

// TopUpReceipt confirms a balance top-up.
type TopUpReceipt struct {
	PreviousBalance float64 `json:"previous_balance"`
	CurrentBalance  float64 `json:"current_balance"`
	TransactionID   string  `json:"transaction_id"`
}
