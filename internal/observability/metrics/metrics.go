// Package metrics emits the standardised metrics of the session lifecycle and backend calls.
package metrics

import (
	"strconv"
	"time"

	obserrors "github.com/mcsa-hvr/circuit1021/internal/observability/errors"
	"github.com/mcsa-hvr/circuit1021/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// APICallMetric captures one request to the circuit backend.
type APICallMetric struct {
	Endpoint string
	Method   string
	Status   int
	Duration time.Duration
	Err      error
}

// EmitAPICall emits api.request (count) and api.duration (timing).
func EmitAPICall(sink statsd.Sink, in APICallMetric) {
	if sink == nil {
		return
	}

	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}
	tags := map[string]string{
		"endpoint": in.Endpoint,
		"method":   in.Method,
		"result":   result,
	}
	if in.Status > 0 {
		tags["status"] = strconv.Itoa(in.Status)
	}
	if in.Err != nil {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("api.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("api.duration", in.Duration, CloneTags(tags))
	}
}

// SessionMetric captures one session manager state change.
type SessionMetric struct {
	From    string
	To      string
	Trigger string
	Result  string
	Err     error
}

// EmitSessionTransition emits session.transition (count).
func EmitSessionTransition(sink statsd.Sink, in SessionMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"from":    in.From,
		"to":      in.To,
		"trigger": in.Trigger,
		"result":  in.Result,
	}
	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}
	sink.Count("session.transition", 1, tags)
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
