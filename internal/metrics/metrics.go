// Package metrics provides a minimal instrumentation interface with a no-op
// default and a Prometheus-backed implementation.
package metrics

import (
	"sync"
	"time"
)

// Recorder defines the metrics surface used across the codebase.
type Recorder interface {
	IncBackendTotal(endpoint string, success bool)
	ObserveBackendSeconds(endpoint string, success bool, seconds float64)
	IncFlowTotal(flow, outcome string)
}

type noopRecorder struct{}

func (n *noopRecorder) IncBackendTotal(string, bool)                {}
func (n *noopRecorder) ObserveBackendSeconds(string, bool, float64) {}
func (n *noopRecorder) IncFlowTotal(string, string)                 {}

var (
	recMu    sync.RWMutex
	recorder Recorder = &noopRecorder{}
)

// Default returns the current recorder.
func Default() Recorder {
	recMu.RLock()
	defer recMu.RUnlock()
	return recorder
}

// SetRecorder swaps the global recorder implementation.
func SetRecorder(r Recorder) {
	recMu.Lock()
	defer recMu.Unlock()
	if r == nil {
		r = &noopRecorder{}
	}
	recorder = r
}

// TimeBackend times one backend call.
func TimeBackend(endpoint string) func(success bool) {
	start := time.Now()
	return func(success bool) {
		dur := time.Since(start).Seconds()
		Default().IncBackendTotal(endpoint, success)
		Default().ObserveBackendSeconds(endpoint, success, dur)
	}
}

// Flow outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

func RecordFlow(flow, outcome string) {
	Default().IncFlowTotal(flow, outcome)
}
