// Package metrics exposes Prometheus metrics for scoring, grading and HTTP traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trivia-service/internal/domain"
)

const namespace = "trivia"

// Metrics owns the service collectors. Each instance registers on its own registry.
type Metrics struct {
	registry *prometheus.Registry

	aggregations    prometheus.Counter
	sections        prometheus.Counter
	sectionsClamped prometheus.Counter
	overall         prometheus.Histogram
	gradeErrors     *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		aggregations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "aggregations_total",
			Help:      "Number of score aggregations performed.",
		}),
		sections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "sections_total",
			Help:      "Number of sections scored.",
		}),
		sectionsClamped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "sections_clamped_total",
			Help:      "Number of sections whose correctness was outside [0, 1] or not a number.",
		}),
		overall: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "scoring",
			Name:      "overall",
			Help:      "Distribution of overall scores.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
		gradeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grading",
			Name:      "errors_total",
			Help:      "Grading failures by reason.",
		}, []string{"reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	reg.MustRegister(
		m.aggregations,
		m.sections,
		m.sectionsClamped,
		m.overall,
		m.gradeErrors,
		m.httpRequests,
		m.httpRequestDuration,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveScore records one aggregation; clamped is how many inputs were normalized.
func (m *Metrics) ObserveScore(score domain.AggregatedScore, clamped int) {
	m.aggregations.Inc()
	m.sections.Add(float64(len(score.Sections)))
	m.sectionsClamped.Add(float64(clamped))
	m.overall.Observe(score.Overall)
}

// ObserveGradeError counts a failed grading call.
func (m *Metrics) ObserveGradeError(reason string) {
	m.gradeErrors.WithLabelValues(reason).Inc()
}

// ObserveHTTPRequest records a finished HTTP request.
func (m *Metrics) ObserveHTTPRequest(route, method, status string, d time.Duration) {
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
