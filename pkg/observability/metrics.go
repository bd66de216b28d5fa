package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters and histograms.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	WorkflowsStarted  *prometheus.CounterVec
	SummariesTotal    *prometheus.CounterVec
	GradeDistribution prometheus.Histogram
	LoopIterations    prometheus.Histogram
}

// NewMetrics builds the metric set on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gistloop",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gistloop",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		WorkflowsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gistloop",
			Name:      "workflows_started_total",
			Help:      "Workflow starts by workflow name.",
		}, []string{"workflow"}),
		SummariesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gistloop",
			Name:      "summaries_total",
			Help:      "Completed summaries by type and outcome.",
		}, []string{"summary_type", "outcome"}),
		GradeDistribution: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gistloop",
			Name:      "summary_grade",
			Help:      "Distribution of judge grades.",
			Buckets:   prometheus.LinearBuckets(0, 1, 11),
		}),
		LoopIterations: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gistloop",
			Name:      "summary_loop_iterations",
			Help:      "Iterations consumed per refinement loop.",
			Buckets:   prometheus.LinearBuckets(1, 1, 5),
		}),
	}
}

// Handler serves the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
