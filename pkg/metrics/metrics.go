package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Report ingestion metrics
	ReportUploadsTotal *prometheus.CounterVec
	ReportRowsTotal    *prometheus.CounterVec
	SessionsActive     prometheus.Gauge

	// Analysis metrics
	AnalysisRunsTotal *prometheus.CounterVec
	TermsFlaggedTotal *prometheus.CounterVec

	// Export metrics
	ExportsTotal   *prometheus.CounterVec
	ExportDuration *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		ReportUploadsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_uploads_total",
				Help: "Total number of report uploads",
			},
			[]string{"file_type", "status"},
		),

		ReportRowsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_rows_processed_total",
				Help: "Total number of report rows normalized",
			},
			[]string{"file_type"},
		),

		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sessions_active",
				Help: "Number of sessions currently held in memory",
			},
		),

		AnalysisRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analysis_runs_total",
				Help: "Total number of search term analysis runs",
			},
			[]string{"status"},
		),

		TermsFlaggedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terms_flagged_total",
				Help: "Total number of search terms flagged, by rule",
			},
			[]string{"rule"},
		),

		ExportsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "exports_total",
				Help: "Total number of bulk file exports",
			},
			[]string{"export_type", "status"},
		),

		ExportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "export_duration_seconds",
				Help:    "Bulk file generation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"export_type"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Report upload metrics
func (m *Metrics) RecordUpload(fileType, status string, rows int) {
	m.ReportUploadsTotal.WithLabelValues(fileType, status).Inc()
	if rows > 0 {
		m.ReportRowsTotal.WithLabelValues(fileType).Add(float64(rows))
	}
}

// Analysis run metrics
func (m *Metrics) RecordAnalysisRun(status string) {
	m.AnalysisRunsTotal.WithLabelValues(status).Inc()
}

// Flagged term metrics
func (m *Metrics) RecordFlaggedTerms(rule string, count int) {
	m.TermsFlaggedTotal.WithLabelValues(rule).Add(float64(count))
}

// Export metrics
func (m *Metrics) RecordExport(exportType, status string, duration time.Duration) {
	m.ExportsTotal.WithLabelValues(exportType, status).Inc()
	m.ExportDuration.WithLabelValues(exportType).Observe(duration.Seconds())
}

// Active session gauge
func (m *Metrics) SetActiveSessions(count int) {
	m.SessionsActive.Set(float64(count))
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
