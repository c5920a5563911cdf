package handler

import (
	"expvar"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// expvar names are process-global, so the counters are published once here
// rather than per Handler.
var (
	totalRequestsReceived          = expvar.NewInt("total_requests_received")
	totalResponsesSent             = expvar.NewInt("total_responses_sent")
	totalProcessingTimeMicrosecond = expvar.NewInt("total_processing_time_μs")
	totalResponsesSentByStatus     = expvar.NewMap("total_responses_sent_by_status")
)

const metricsNamespace = "invoiceapi"

// promMetrics holds the Prometheus collectors served on /metrics.
type promMetrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newPromMetrics(gitSHA, version string) *promMetrics {
	m := &promMetrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "code"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "build_info",
			Help:      "Build metadata of the running service, always 1",
		},
		[]string{"git_sha", "version"},
	)
	buildInfo.WithLabelValues(gitSHA, version).Set(1)

	m.registry.MustRegister(
		m.requests,
		m.duration,
		buildInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}
