package service

import (
	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
)

// Hooks carries the optional lifecycle callbacks a consumer registers to
// observe submissions and watches. Nil callbacks are skipped. Callbacks run
// synchronously on the calling goroutine and must return quickly.
//
// Once a watch's context is canceled no further hooks fire for it.
type Hooks struct {
	// OnSubmitted fires once per accepted submission.
	OnSubmitted func(p *model.Prediction)
	// OnStatus fires per pending observation while watching.
	OnStatus func(p *model.Prediction)
	// OnTerminal fires exactly once when a watched job reaches a terminal status.
	OnTerminal func(p *model.Prediction)
	// OnError fires when a submission or watch definitively fails. Retried
	// queries do not fire it; only the final abandonment does.
	OnError func(jobID string, err error)
	// OnBalanceStale fires when the account balance should be re-read.
	OnBalanceStale func()
}

func (h Hooks) submitted(p *model.Prediction) {
	if h.OnSubmitted != nil {
		h.OnSubmitted(p)
	}
}

func (h Hooks) status(p *model.Prediction) {
	if h.OnStatus != nil {
		h.OnStatus(p)
	}
}

func (h Hooks) terminal(p *model.Prediction) {
	if h.OnTerminal != nil {
		h.OnTerminal(p)
	}
}

func (h Hooks) failed(jobID string, err error) {
	if h.OnError != nil {
		h.OnError(jobID, err)
	}
}

func (h Hooks) balanceStale() {
	if h.OnBalanceStale != nil {
		h.OnBalanceStale()
	}
}
