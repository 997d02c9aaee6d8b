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

	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	DiagnosticsTotal *prometheus.CounterVec
	SolverIterations prometheus.Histogram
	SolverRunsTotal  *prometheus.CounterVec

	// Report ingestion metrics
	ReportRowsProcessed *prometheus.CounterVec
	ReportRowsFailed    *prometheus.CounterVec
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

		AnalysesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analyses_total",
				Help: "Total number of metric calculations by outcome",
			},
			[]string{"outcome"},
		),

		DiagnosticsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diagnostics_total",
				Help: "Total number of diagnostic runs by scenario and status",
			},
			[]string{"scenario", "status"},
		),

		SolverIterations: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "price_solver_iterations",
				Help:    "Newton iterations spent per target-price solve",
				Buckets: []float64{1, 5, 10, 20, 40, 80, 120},
			},
		),

		SolverRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "price_solver_runs_total",
				Help: "Total number of target-price solves by result",
			},
			[]string{"result"},
		),

		ReportRowsProcessed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_rows_processed_total",
				Help: "Total number of report rows processed",
			},
			[]string{"report", "status"},
		),

		ReportRowsFailed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "report_rows_failed_total",
				Help: "Total number of report rows that failed parsing",
			},
			[]string{"report", "error_type"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Calculation outcome metrics
func (m *Metrics) RecordAnalysis(outcome string) {
	m.AnalysesTotal.WithLabelValues(outcome).Inc()
}

// Diagnostic run metrics
func (m *Metrics) RecordDiagnostic(scenario, status string) {
	m.DiagnosticsTotal.WithLabelValues(scenario, status).Inc()
}

// Price solver metrics
func (m *Metrics) RecordSolverRun(iterations int, converged bool) {
	m.SolverIterations.Observe(float64(iterations))
	result := "converged"
	if !converged {
		result = "exhausted"
	}
	m.SolverRunsTotal.WithLabelValues(result).Inc()
}

// Report row processing metrics
func (m *Metrics) RecordReportRows(report, status string, count int) {
	m.ReportRowsProcessed.WithLabelValues(report, status).Add(float64(count))
}

// Report row failure metrics
func (m *Metrics) RecordReportRowFailure(report, errorType string) {
	m.ReportRowsFailed.WithLabelValues(report, errorType).Inc()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

// HTTP requests in flight counter
func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
