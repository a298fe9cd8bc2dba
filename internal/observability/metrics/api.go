package metrics

import (
	"time"

	apperrors "github.com/frauddesk/frauddesk-cli/internal/errors"
	"github.com/frauddesk/frauddesk-cli/internal/observability/statsd"
)

// APICallMetric captures details about one transport call for metric emission.
type APICallMetric struct {
	Op       string
	Duration time.Duration
	Err      error
}

// EmitAPICall emits standardised transport call metrics.
func EmitAPICall(sink statsd.Sink, in APICallMetric) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	tags := map[string]string{
		"op": in.Op,
	}
	if in.Err != nil {
		result = ResultError
		tags["kind"] = string(apperrors.GetKind(in.Err))
	}
	tags["result"] = result

	sink.Count("api.request", 1, tags)

	if in.Duration > 0 {
		sink.Timing("api.request.duration", in.Duration, CloneTags(tags))
	}
}
