package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Filesystem operation metrics
	FSOps        *prometheus.CounterVec
	FSOpDuration *prometheus.HistogramVec
	FSOpErrors   *prometheus.CounterVec
	BytesWritten prometheus.Counter

	// Quota and sandbox metrics
	QuotaRejections prometheus.Counter
	PathViolations  prometheus.Counter

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehost_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filehost_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filehost_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filehost_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		FSOps: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehost_fs_ops_total",
				Help: "Total number of filesystem operations",
			},
			[]string{"op", "status"},
		),
		FSOpDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "filehost_fs_op_duration_seconds",
				Help:    "Filesystem operation duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"op"},
		),
		FSOpErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filehost_fs_op_errors_total",
				Help: "Total number of filesystem operation errors",
			},
			[]string{"op", "error_type"},
		),
		BytesWritten: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "filehost_bytes_written_total",
				Help: "Total bytes accepted by write operations",
			},
		),

		QuotaRejections: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "filehost_quota_rejections_total",
				Help: "Total number of writes rejected by quota enforcement",
			},
		),
		PathViolations: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "filehost_path_violations_total",
				Help: "Total number of rejected sandbox-escape path attempts",
			},
		),

		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "filehost_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric.
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))
}

// RecordFSOp records a filesystem operation.
func (m *Metrics) RecordFSOp(op, status string, duration time.Duration) {
	m.FSOps.WithLabelValues(op, status).Inc()
	m.FSOpDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordFSOpError records a filesystem operation error.
func (m *Metrics) RecordFSOpError(op, errorType string) {
	m.FSOpErrors.WithLabelValues(op, errorType).Inc()
}

// AddBytesWritten adds to the accepted-write byte counter.
func (m *Metrics) AddBytesWritten(n int) {
	m.BytesWritten.Add(float64(n))
}

// IncQuotaRejections increments the quota rejection counter.
func (m *Metrics) IncQuotaRejections() {
	m.QuotaRejections.Inc()
}

// IncPathViolations increments the sandbox violation counter.
func (m *Metrics) IncPathViolations() {
	m.PathViolations.Inc()
}
