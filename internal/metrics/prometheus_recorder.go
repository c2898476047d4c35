package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	duration *prom.HistogramVec
	results  *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "sitedata",
			Name:      "graphql_request_duration_seconds",
			Help:      "Duration of GraphQL requests to the content API",
			Buckets:   prom.DefBuckets,
		}, []string{"operation"}),
		results: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "sitedata",
			Name:      "graphql_requests_total",
			Help:      "GraphQL requests by operation and result",
		}, []string{"operation", "result"}),
	}
	reg.MustRegister(pr.duration, pr.results)
	return pr
}

func (p *PrometheusRecorder) ObserveRequest(operation string, d time.Duration, result Result) {
	if p == nil {
		return
	}
	p.duration.WithLabelValues(operation).Observe(d.Seconds())
	p.results.WithLabelValues(operation, string(result)).Inc()
}
