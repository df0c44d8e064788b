package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the intake pipeline.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	ticketsCreatedTotal *prometheus.CounterVec
	analysisResults     *prometheus.CounterVec
	analysisDuration    prometheus.Histogram
	authFailuresTotal   *prometheus.CounterVec
	errorsTotal         *prometheus.CounterVec
}

// NewMetrics registers instruments against the given registerer. Tests pass
// a fresh registry to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketwiz_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ticketwiz_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		ticketsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketwiz_tickets_created_total",
			Help: "Tickets created, by intake source",
		}, []string{"source"}),
		analysisResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketwiz_analysis_results_total",
			Help: "Analysis outcomes: parsed, defaulted, unavailable",
		}, []string{"outcome"}),
		analysisDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ticketwiz_analysis_duration_seconds",
			Help:    "Duration of external analysis calls in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		authFailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketwiz_auth_failures_total",
			Help: "Authentication failures, by kind",
		}, []string{"kind"}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ticketwiz_request_errors_total",
			Help: "Requests rejected with a domain error, by code",
		}, []string{"method", "path", "code"}),
	}
}

// RecordRequest observes a completed HTTP request.
func (m *Metrics) RecordRequest(method, path string, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordTicketCreated counts a persisted ticket by intake source.
func (m *Metrics) RecordTicketCreated(source string) {
	if m == nil {
		return
	}
	m.ticketsCreatedTotal.WithLabelValues(source).Inc()
}

// RecordAnalysisResult counts an analysis outcome.
func (m *Metrics) RecordAnalysisResult(outcome string) {
	if m == nil {
		return
	}
	m.analysisResults.WithLabelValues(outcome).Inc()
}

// RecordAnalysisDuration observes one provider round trip.
func (m *Metrics) RecordAnalysisDuration(duration time.Duration) {
	if m == nil {
		return
	}
	m.analysisDuration.Observe(duration.Seconds())
}

// RecordAuthFailure counts a rejected authentication attempt.
func (m *Metrics) RecordAuthFailure(kind string) {
	if m == nil {
		return
	}
	m.authFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordError counts a request rejected with a domain error code.
func (m *Metrics) RecordError(method, path, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(method, path, code).Inc()
}
