package metrics

import (
	"time"

	apperrors "github.com/frauddesk/frauddesk-cli/internal/errors"
	"github.com/frauddesk/frauddesk-cli/internal/observability/statsd"
)

// Poll attempt outcomes for metric tagging.
const (
	PollOutcomePending    = "pending"
	PollOutcomeTerminal   = "terminal"
	PollOutcomeErrorRetry = "error_retry"
	PollOutcomeAbandoned  = "abandoned"
)

// PollAttemptMetric captures one status query outcome.
type PollAttemptMetric struct {
	Outcome string
	Err     error
}

// EmitPollAttempt emits a counter per status query, tagged with its outcome
// and, for failures, the error kind.
func EmitPollAttempt(sink statsd.Sink, in PollAttemptMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"outcome": in.Outcome,
	}
	if in.Err != nil {
		tags["kind"] = string(apperrors.GetKind(in.Err))
	}

	sink.Count("poll.attempt", 1, tags)
}

// WatchMetric captures a finished watch: how it ended, how long it took and
// how many queries it spent.
type WatchMetric struct {
	Outcome  string
	Duration time.Duration
	Queries  int
	Retries  int
}

// EmitWatch emits standardised watch lifecycle metrics.
func EmitWatch(sink statsd.Sink, in WatchMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"outcome": in.Outcome,
	}

	sink.Count("poll.watch", 1, tags)
	if in.Queries > 0 {
		sink.Count("poll.watch.queries", int64(in.Queries), CloneTags(tags))
	}
	if in.Retries > 0 {
		sink.Count("poll.watch.retries", int64(in.Retries), CloneTags(tags))
	}
	if in.Duration > 0 {
		sink.Timing("poll.watch.duration", in.Duration, CloneTags(tags))
	}
}

// SubmitMetric captures a submission attempt.
type SubmitMetric struct {
	Duration time.Duration
	Err      error
}

// EmitSubmit emits standardised submission metrics.
func EmitSubmit(sink statsd.Sink, in SubmitMetric) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	tags := map[string]string{}
	if in.Err != nil {
		result = ResultError
		tags["kind"] = string(apperrors.GetKind(in.Err))
	}
	tags["result"] = result

	sink.Count("submit.attempt", 1, tags)

	if in.Duration > 0 {
		sink.Timing("submit.duration", in.Duration, CloneTags(tags))
	}
}

// EmitBalance records the last fetched account balance as a gauge.
func EmitBalance(sink statsd.Sink, balance float64) {
	if sink == nil {
		return
	}
	sink.Gauge("balance.credits", balance, nil)
}
