// Package metrics records API client telemetry with Prometheus collectors.
// A CLI run can dump them to a node_exporter textfile.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements client.Observer.
type Recorder struct {
	registry *prometheus.Registry
	attempts *prometheus.CounterVec
	retries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// New returns a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leavedesk",
			Subsystem: "api",
			Name:      "attempts_total",
			Help:      "HTTP attempts by route and status code (0 for transport errors).",
		}, []string{"method", "route", "code"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leavedesk",
			Subsystem: "api",
			Name:      "retries_total",
			Help:      "Retries scheduled after a transient failure.",
		}, []string{"method", "route"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leavedesk",
			Subsystem: "api",
			Name:      "attempt_duration_seconds",
			Help:      "Latency of a single HTTP attempt.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "route"}),
	}
	r.registry.MustRegister(r.attempts, r.retries, r.duration)
	return r
}

// ObserveAttempt records one HTTP attempt.
func (r *Recorder) ObserveAttempt(method, route string, status int, elapsed time.Duration) {
	r.attempts.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveRetry records a scheduled retry.
func (r *Recorder) ObserveRetry(method, route string) {
	r.retries.WithLabelValues(method, route).Inc()
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteToTextfile writes every metric to path in the text exposition format.
func (r *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
