// Package metric provides Prometheus metrics for FreteHub.
package metric

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

const namespace = "fretehub"

// Registry holds all application metrics.
//
// Each CLI process (and each shell) owns one Registry; nothing is registered
// on the Prometheus default registry.
type Registry struct {
	registry *prometheus.Registry

	// Form metrics
	FormSubmissions *prometheus.CounterVec
	SubmitDuration  *prometheus.HistogramVec
	FieldErrors     *prometheus.CounterVec

	// API metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Session metrics
	SessionEvents *prometheus.CounterVec
}

// NewRegistry creates a new metrics registry.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),

		FormSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "form",
			Name:      "submissions_total",
			Help:      "Form submissions by form and outcome",
		}, []string{"form", "outcome"}),

		SubmitDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "form",
			Name:      "submit_duration_seconds",
			Help:      "Time from submit to outcome, including the API call",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"form"}),

		FieldErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "form",
			Name:      "field_errors_total",
			Help:      "Error messages raised per form field",
		}, []string{"form", "field"}),

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "API requests by method, path and status",
		}, []string{"method", "path", "status"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),

		SessionEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "events_total",
			Help:      "Session transitions (login, logout)",
		}, []string{"event"}),
	}

	r.registry.MustRegister(
		r.FormSubmissions,
		r.SubmitDuration,
		r.FieldErrors,
		r.RequestsTotal,
		r.RequestDuration,
		r.SessionEvents,
	)

	return r
}

// Registerer exposes the underlying registry for components that register
// their own metrics.
func (r *Registry) Registerer() prometheus.Registerer {
	return r.registry
}

// Gatherer exposes the underlying registry for reading.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Handler returns an HTTP handler serving the registry in Prometheus format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (r *Registry) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// ObserveSubmit records one finished form submission.
func (r *Registry) ObserveSubmit(form, outcome string, d time.Duration) {
	r.FormSubmissions.WithLabelValues(form, outcome).Inc()
	r.SubmitDuration.WithLabelValues(form).Observe(d.Seconds())
}

// ObserveFieldError records an error message raised on a form field.
func (r *Registry) ObserveFieldError(form, field string) {
	r.FieldErrors.WithLabelValues(form, field).Inc()
}

// RecordRequest records a completed API request. Status is the HTTP status
// code, or "error" when no response was received.
func (r *Registry) RecordRequest(method, path, status string, d time.Duration) {
	r.RequestsTotal.WithLabelValues(method, path, status).Inc()
	r.RequestDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

// RecordSessionEvent records a session transition.
func (r *Registry) RecordSessionEvent(event string) {
	r.SessionEvents.WithLabelValues(event).Inc()
}
