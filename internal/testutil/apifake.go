package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/frauddesk/frauddesk-cli/internal/core"
	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
)

// StatusStep is one scripted response to a status query.
type StatusStep struct {
	Prediction *model.Prediction
	Err        error
}

// ScriptedAPI is a core.PredictionAPI for tests. Status queries consume a
// fixed script in order; the other operations delegate to optional func
// fields and fail loudly when unset. Safe for concurrent use.
type ScriptedAPI struct {
	CreateFunc  func(ctx context.Context, req *model.PredictRequest) (*model.Prediction, error)
	ListFunc    func(ctx context.Context, skip, limit int) (*model.PredictionHistory, error)
	BalanceFunc func(ctx context.Context) (*model.Balance, error)
	TopUpFunc   func(ctx context.Context, req *model.TopUpRequest) (*model.TopUpReceipt, error)

	mu      sync.Mutex
	script  []StatusStep
	queried []string
}

var _ core.PredictionAPI = (*ScriptedAPI)(nil)

// NewScriptedAPI creates a ScriptedAPI whose status queries play back steps
// in order.
func NewScriptedAPI(steps ...StatusStep) *ScriptedAPI {
	return &ScriptedAPI{script: steps}
}

// Queried returns the job ids observed by GetPrediction, in order.
func (a *ScriptedAPI) Queried() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.queried))
	copy(out, a.queried)
	return out
}

// CreatePrediction delegates to CreateFunc.
func (a *ScriptedAPI) CreatePrediction(ctx context.Context, req *model.PredictRequest) (*model.Prediction, error) {
	if a.CreateFunc == nil {
		panic("testutil: CreatePrediction called without CreateFunc")
	}
	return a.CreateFunc(ctx, req)
}

// GetPrediction pops the next scripted step. Running past the end of the
// script panics so a looping poller cannot silently spin forever.
func (a *ScriptedAPI) GetPrediction(_ context.Context, jobID string) (*model.Prediction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.queried = append(a.queried, jobID)
	if len(a.script) == 0 {
		panic(fmt.Sprintf("testutil: status script exhausted after %d queries", len(a.queried)))
	}
	step := a.script[0]
	a.script = a.script[1:]
	return step.Prediction, step.Err
}

// ListPredictions delegates to ListFunc.
func (a *ScriptedAPI) ListPredictions(ctx context.Context, skip, limit int) (*model.PredictionHistory, error) {
	if a.ListFunc == nil {
		panic("testutil: ListPredictions called without ListFunc")
	}
	return a.ListFunc(ctx, skip, limit)
}

// Balance delegates to BalanceFunc.
func (a *ScriptedAPI) Balance(ctx context.Context) (*model.Balance, error) {
	if a.BalanceFunc == nil {
		panic("testutil: Balance called without BalanceFunc")
	}
	return a.BalanceFunc(ctx)
}

// TopUp delegates to TopUpFunc.
func (a *ScriptedAPI) TopUp(ctx context.Context, req *model.TopUpRequest) (*model.TopUpReceipt, error) {
	if a.TopUpFunc == nil {
		panic("testutil: TopUp called without TopUpFunc")
	}
	return a.TopUpFunc(ctx, req)
}
