package testutil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frauddesk/frauddesk-cli/internal/domain/model"
)

func TestFakeClockRecordsSleeps(t *testing.T) {
	clock := NewFakeClock()
	ctx := context.Background()

	if err := clock.Sleep(ctx, 2*time.Second); err != nil {
		t.Fatalf("Sleep() error = %v", err)
	}
	if err := clock.Sleep(ctx, 3*time.Second); err != nil {
		t.Fatalf("Sleep() error = %v", err)
	}

	slept := clock.Slept()
	if len(slept) != 2 || slept[0] != 2*time.Second || slept[1] != 3*time.Second {
		t.Errorf("Slept() = %v, want [2s 3s]", slept)
	}

	want := TestTime().Add(5 * time.Second)
	if got := clock.Now(); !got.Equal(want) {
		t.Errorf("Now() = %v, want %v", got, want)
	}
}

func TestFakeClockCanceledContext(t *testing.T) {
	clock := NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := clock.Sleep(ctx, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Sleep() error = %v, want context.Canceled", err)
	}
	if len(clock.Slept()) != 0 {
		t.Errorf("Slept() = %v, want empty after pre-canceled sleep", clock.Slept())
	}
}

func TestFakeClockOnSleepCancel(t *testing.T) {
	clock := NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	clock.OnSleep = func(time.Duration) { cancel() }

	err := clock.Sleep(ctx, time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Sleep() error = %v, want context.Canceled", err)
	}
	if len(clock.Slept()) != 1 {
		t.Errorf("Slept() = %v, want the interrupted sleep recorded", clock.Slept())
	}
}

func TestScriptedAPIPlayback(t *testing.T) {
	wantErr := errors.New("boom")
	api := NewScriptedAPI(
		StatusStep{Prediction: NewPrediction().WithJobID("J1").Build()},
		StatusStep{Err: wantErr},
	)

	pred, err := api.GetPrediction(context.Background(), "J1")
	if err != nil {
		t.Fatalf("GetPrediction() error = %v", err)
	}
	if pred.JobID != "J1" || pred.Status != model.StatusPending {
		t.Errorf("GetPrediction() = %+v, want pending J1", pred)
	}

	if _, err := api.GetPrediction(context.Background(), "J1"); !errors.Is(err, wantErr) {
		t.Errorf("GetPrediction() error = %v, want %v", err, wantErr)
	}

	queried := api.Queried()
	if len(queried) != 2 || queried[0] != "J1" || queried[1] != "J1" {
		t.Errorf("Queried() = %v, want [J1 J1]", queried)
	}
}

func TestScriptedAPIExhaustionPanics(t *testing.T) {
	api := NewScriptedAPI()
	defer func() {
		if recover() == nil {
			t.Error("expected panic when status script is exhausted")
		}
	}()
	_, _ = api.GetPrediction(context.Background(), "J1")
}
