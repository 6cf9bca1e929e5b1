package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tunevault"

// Registry holds all application metrics.
type Registry struct {
	registry *prometheus.Registry

	// Session metrics
	SessionRefreshes *prometheus.CounterVec

	// Pipeline metrics
	PipelineRequests *prometheus.CounterVec
	PipelineDuration prometheus.Histogram
	DecryptedBytes   prometheus.Counter

	// Transport metrics
	TransportRequests *prometheus.CounterVec
}

// NewRegistry creates a registry with Go runtime, process and application
// collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		SessionRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_refresh_total",
			Help:      "Authentication exchanges performed, by result.",
		}, []string{"result"}),
		PipelineRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_requests_total",
			Help:      "Fetch-and-decrypt calls, by final stage and result.",
		}, []string{"stage", "result"}),
		PipelineDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of fetch-and-decrypt calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		DecryptedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decrypted_bytes_total",
			Help:      "Bytes produced by the stripe cipher.",
		}),
		TransportRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transport_requests_total",
			Help:      "HTTP requests issued, by kind and result.",
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		r.SessionRefreshes,
		r.PipelineRequests,
		r.PipelineDuration,
		r.DecryptedBytes,
		r.TransportRequests,
	)
	return r
}

// Handler returns an HTTP handler serving this registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// MustRegister registers additional collectors.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// RecordSessionRefresh counts an authentication exchange.
func (r *Registry) RecordSessionRefresh(result string) {
	if r == nil {
		return
	}
	r.SessionRefreshes.WithLabelValues(result).Inc()
}

// RecordPipeline counts a pipeline call and observes its duration.
// stage is the stage that failed, or "done" on success.
func (r *Registry) RecordPipeline(stage, result string, seconds float64) {
	if r == nil {
		return
	}
	r.PipelineRequests.WithLabelValues(stage, result).Inc()
	r.PipelineDuration.Observe(seconds)
}

// AddDecryptedBytes adds n to the decrypted byte counter.
func (r *Registry) AddDecryptedBytes(n int) {
	if r == nil {
		return
	}
	r.DecryptedBytes.Add(float64(n))
}

// ObserveTransport counts an HTTP request.
func (r *Registry) ObserveTransport(kind, result string) {
	if r == nil {
		return
	}
	if kind == "" {
		kind = "other"
	}
	r.TransportRequests.WithLabelValues(kind, result).Inc()
}
