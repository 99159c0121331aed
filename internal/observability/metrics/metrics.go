// Package metrics emits the console's standardised StatsD series.
package metrics

import (
	"strings"
	"time"

	obserrors "github.com/stepcontest/contest-admin/internal/observability/errors"
	"github.com/stepcontest/contest-admin/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
	ResultNoop    = "noop"
)

// Session transitions.
const (
	TransitionLogin       = "login"
	TransitionLogout      = "logout"
	TransitionDeauthorize = "deauthorize"
	TransitionRestore     = "restore"
)

// RequestMetric captures one round trip through the admin API envelope.
type RequestMetric struct {
	Method   string
	Path     string
	Status   string
	Duration time.Duration
	Err      error
}

// EmitRequest emits the api.request counter and timing.
func EmitRequest(sink statsd.Sink, in RequestMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"method":   in.Method,
		"resource": Resource(in.Path),
		"status":   in.Status,
		"result":   ResultSuccess,
	}
	if in.Err != nil {
		tags["result"] = ResultError
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("api.request", 1, tags)
	if in.Duration > 0 {
		sink.Timing("api.request.duration", in.Duration, CloneTags(tags))
	}
}

// SessionMetric captures a session state change.
type SessionMetric struct {
	Transition string
	Reason     string
	Result     string
	Err        error
}

// EmitSessionTransition emits the session.transition counter.
func EmitSessionTransition(sink statsd.Sink, in SessionMetric) {
	if sink == nil {
		return
	}

	result := in.Result
	if result == "" {
		result = ResultSuccess
	}
	tags := map[string]string{
		"transition": in.Transition,
		"result":     result,
	}
	if in.Reason != "" {
		tags["reason"] = in.Reason
	}
	if in.Err != nil && result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("session.transition", 1, tags)
}

// Resource returns the first path segment ("/contest/7" -> "contest") to keep tag
// cardinality bounded.
func Resource(path string) string {
	p := strings.TrimLeft(path, "/")
	if i := strings.IndexAny(p, "/?"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "root"
	}
	return p
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
