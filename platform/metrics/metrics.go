// Package metrics exposes Prometheus instrumentation for quote estimates,
// geocoding lookups and outbound notifications.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// QuoteMetrics records quote calculator and submitter activity.
type QuoteMetrics struct {
	estimates   *prometheus.CounterVec
	geocode     *prometheus.HistogramVec
	submissions *prometheus.CounterVec
	emails      *prometheus.CounterVec
}

// NewQuoteMetrics registers the quote metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewQuoteMetrics(reg prometheus.Registerer) *QuoteMetrics {
	if reg == nil {
		return &QuoteMetrics{}
	}
	estimates := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_estimates_total",
		Help: "Quote estimates computed, by service type and travel fee reason.",
	}, []string{"service_type", "travel_reason"})
	geocode := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geocode_duration_seconds",
		Help:    "Latency of venue address geocoding lookups.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "quote_submissions_total",
		Help: "Quote request submissions, by outcome.",
	}, []string{"outcome"})
	emails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Outbound notification emails, by kind and outcome.",
	}, []string{"kind", "outcome"})
	reg.MustRegister(estimates, geocode, submissions, emails)
	return &QuoteMetrics{
		estimates:   estimates,
		geocode:     geocode,
		submissions: submissions,
		emails:      emails,
	}
}

// IncEstimate counts a computed estimate.
func (m *QuoteMetrics) IncEstimate(serviceType, travelReason string) {
	if m == nil || m.estimates == nil {
		return
	}
	m.estimates.WithLabelValues(normalizeLabel(serviceType), normalizeLabel(travelReason)).Inc()
}

// ObserveGeocode records the duration of a geocoding lookup.
func (m *QuoteMetrics) ObserveGeocode(outcome string, duration time.Duration) {
	if m == nil || m.geocode == nil {
		return
	}
	m.geocode.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncSubmission counts a quote request submission.
func (m *QuoteMetrics) IncSubmission(outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncEmail counts an outbound email attempt.
func (m *QuoteMetrics) IncEmail(kind, outcome string) {
	if m == nil || m.emails == nil {
		return
	}
	m.emails.WithLabelValues(normalizeLabel(kind), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
