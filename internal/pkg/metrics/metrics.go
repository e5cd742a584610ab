package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 进程内的 Prometheus 指标
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	JobRunsTotal    *prometheus.CounterVec
	JobRunDuration  *prometheus.HistogramVec
	PatternFolds    *prometheus.CounterVec
	IngestMessages  *prometheus.CounterVec
	InsightsCreated prometheus.Counter
	ReportsRendered *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
}

// Default 全局实例，由 /metrics 暴露
var Default = New()

// New 创建独立 registry 并注册全部指标
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		Registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socialpulse_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "socialpulse_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		JobRunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socialpulse_job_runs_total",
				Help: "Scheduled job runs by result",
			},
			[]string{"job", "result"},
		),
		JobRunDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "socialpulse_job_run_duration_seconds",
				Help:    "Scheduled job run duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.05, 4, 8),
			},
			[]string{"job"},
		),
		PatternFolds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socialpulse_pattern_folds_total",
				Help: "Post snapshots considered by the engagement pattern fold",
			},
			[]string{"result"},
		),
		IngestMessages: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socialpulse_ingest_messages_total",
				Help: "Kafka ingest messages by type and result",
			},
			[]string{"type", "result"},
		),
		InsightsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "socialpulse_insights_created_total",
				Help: "AI insights written to the inbox",
			},
		),
		ReportsRendered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socialpulse_reports_rendered_total",
				Help: "Rendered report files by format and result",
			},
			[]string{"format", "result"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "socialpulse_cache_lookups_total",
				Help: "Redis cache lookups by cache and outcome",
			},
			[]string{"cache", "outcome"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.JobRunsTotal,
		m.JobRunDuration,
		m.PatternFolds,
		m.IngestMessages,
		m.InsightsCreated,
		m.ReportsRendered,
		m.CacheLookups,
	)
	return m
}

// Handler 暴露 registry 的 HTTP handler
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

// Result 将 error 归为 success / error 标签
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
