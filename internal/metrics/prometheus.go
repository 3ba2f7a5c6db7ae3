package metrics

import (
	"net/http"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

type promRecorder struct {
	backendTotal   *prom.CounterVec
	backendSeconds *prom.HistogramVec
	flowTotal      *prom.CounterVec
}

func (p *promRecorder) IncBackendTotal(endpoint string, success bool) {
	p.backendTotal.WithLabelValues(endpoint, strconv.FormatBool(success)).Inc()
}

func (p *promRecorder) ObserveBackendSeconds(endpoint string, success bool, seconds float64) {
	p.backendSeconds.WithLabelValues(endpoint, strconv.FormatBool(success)).Observe(seconds)
}

func (p *promRecorder) IncFlowTotal(flow, outcome string) {
	p.flowTotal.WithLabelValues(flow, outcome).Inc()
}

// EnablePrometheus installs a Prometheus recorder as the default and returns
// the exposition handler for its private registry.
func EnablePrometheus() http.Handler {
	registry := prom.NewRegistry()
	p := &promRecorder{
		backendTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "backend_requests_total",
			Help: "Total number of requests sent to the records backend",
		}, []string{"endpoint", "success"}),
		backendSeconds: prom.NewHistogramVec(prom.HistogramOpts{
			Name:    "backend_request_seconds",
			Help:    "Records backend request duration in seconds",
			Buckets: prom.DefBuckets,
		}, []string{"endpoint", "success"}),
		flowTotal: prom.NewCounterVec(prom.CounterOpts{
			Name: "flow_runs_total",
			Help: "Total number of user flows by outcome",
		}, []string{"flow", "outcome"}),
	}

	registry.MustRegister(p.backendTotal, p.backendSeconds, p.flowTotal)
	SetRecorder(p)

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
