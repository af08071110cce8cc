// Package metrics exposes Prometheus instrumentation for report generation
// and the HTTP surface. All collectors live on a dedicated registry so tests
// can create isolated instances.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for report generation.
const (
	OutcomeOK         = "ok"
	OutcomeNoSheet    = "no_sheet"
	OutcomeNoData     = "no_data"
	OutcomeIncomplete = "incomplete"
	OutcomeError      = "error"
)

// Metrics bundles the application's Prometheus collectors.
type Metrics struct {
	registry *prometheus.Registry

	ReportsGenerated *prometheus.CounterVec
	ReportDuration   prometheus.Histogram
	Summaries        *prometheus.CounterVec
	FilesLoaded      prometheus.Counter
	FilesSkipped     prometheus.Counter
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
}

// New creates a metrics set on its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		ReportsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kpi_reports_generated_total",
			Help: "Analysis reports generated, labeled by outcome.",
		}, []string{"outcome"}),
		ReportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "kpi_report_duration_seconds",
			Help:    "Time to resolve, extract and assemble one report.",
			Buckets: prometheus.DefBuckets,
		}),
		Summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kpi_summaries_total",
			Help: "Daily summaries computed, labeled by outcome.",
		}, []string{"outcome"}),
		FilesLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kpi_daily_files_loaded_total",
			Help: "Daily CSV files loaded into record collections.",
		}),
		FilesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kpi_daily_files_skipped_total",
			Help: "Daily CSV files skipped for an unresolvable date.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kpi_http_requests_total",
			Help: "HTTP requests, labeled by method, route and status class.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kpi_http_request_duration_seconds",
			Help:    "HTTP request latency, labeled by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kpi_report_cache_hits_total",
			Help: "Report cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kpi_report_cache_misses_total",
			Help: "Report cache misses.",
		}),
	}

	registry.MustRegister(
		m.ReportsGenerated,
		m.ReportDuration,
		m.Summaries,
		m.FilesLoaded,
		m.FilesSkipped,
		m.HTTPRequests,
		m.HTTPDuration,
		m.CacheHits,
		m.CacheMisses,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveReport records one report generation with its outcome and duration.
func (m *Metrics) ObserveReport(outcome string, elapsed time.Duration) {
	m.ReportsGenerated.WithLabelValues(outcome).Inc()
	m.ReportDuration.Observe(elapsed.Seconds())
}

// ObserveSummary records one daily-summary computation with its outcome.
func (m *Metrics) ObserveSummary(outcome string) {
	m.Summaries.WithLabelValues(outcome).Inc()
}

// ObserveHTTP records one served HTTP request.
func (m *Metrics) ObserveHTTP(method, route string, statusCode int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, statusClass(statusCode)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
