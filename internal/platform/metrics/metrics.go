// Package metrics exposes Prometheus metrics for the scorecard service.
package metrics

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every collector registered by the service.
type Manager struct {
	namespace string
	subsystem string
	buckets   []float64
	enabled   atomic.Bool
	registry  *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	fetchDuration prometheus.Histogram
	fetchFailures prometheus.Counter
	cohortSize    prometheus.Histogram
	scores        *prometheus.HistogramVec
	departmentAvg *prometheus.GaugeVec
	refreshRuns   *prometheus.CounterVec
}

var globalManager = NewManager() //nolint:gochecknoglobals // process-wide metrics

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "scorecard",
		subsystem: "engine",
		buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		registry:  prometheus.NewRegistry(),
	}
	m.enabled.Store(true)
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds.",
		Buckets:   m.buckets,
	}, []string{"route", "method", "status_code"})

	m.fetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subject_fetch_duration_milliseconds",
		Help:      "Time spent fetching task counters for one subject.",
		Buckets:   m.buckets,
	})

	m.fetchFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "subject_fetch_failures_total",
		Help:      "Subjects whose counters could not be fetched and were scored as zero.",
	})

	m.cohortSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cohort_size",
		Help:      "Number of subjects scored per request.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	m.scores = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "score",
		Help:      "Distribution of computed performance scores.",
		Buckets:   prometheus.LinearBuckets(0, 10, 11),
	}, []string{"preset"})

	m.departmentAvg = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "department_average_score",
		Help:      "Average manager-preset score per department, refreshed in the background.",
	}, []string{"tenant", "department_id", "department"})

	m.refreshRuns = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "gauge_refresh_runs_total",
		Help:      "Background gauge refresh runs by outcome.",
	}, []string{"status"})
}

func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// SetEnabled turns recording on or off for the global manager.
func SetEnabled(enabled bool) {
	globalManager.enabled.Store(enabled)
}

func Handler() http.Handler {
	return globalManager.Handler()
}

func GetRegistry() *prometheus.Registry {
	return globalManager.registry
}

func RecordHTTPRequest(route, method string, status int, duration time.Duration) {
	if !globalManager.enabled.Load() {
		return
	}
	code := strconv.Itoa(status)
	globalManager.httpRequests.WithLabelValues(route, method, code).Inc()
	globalManager.httpRequestDuration.WithLabelValues(route, method, code).Observe(float64(duration.Milliseconds()))
}

func RecordFetchDuration(duration time.Duration) {
	if !globalManager.enabled.Load() {
		return
	}
	globalManager.fetchDuration.Observe(float64(duration.Microseconds()) / 1000)
}

func RecordFetchFailure() {
	if !globalManager.enabled.Load() {
		return
	}
	globalManager.fetchFailures.Inc()
}

func RecordCohort(preset string, scores []int) {
	if !globalManager.enabled.Load() {
		return
	}
	globalManager.cohortSize.Observe(float64(len(scores)))
	for _, score := range scores {
		globalManager.scores.WithLabelValues(preset).Observe(float64(score))
	}
}

func UpdateDepartmentAverage(tenantID, departmentID, department string, avg int) {
	if !globalManager.enabled.Load() {
		return
	}
	ClearDepartmentAverage(tenantID, departmentID)
	globalManager.departmentAvg.WithLabelValues(tenantID, departmentID, department).Set(float64(avg))
}

// ClearDepartmentAverage drops every series of one department, including
// ones left under a previous department name.
func ClearDepartmentAverage(tenantID, departmentID string) {
	globalManager.departmentAvg.DeletePartialMatch(prometheus.Labels{"tenant": tenantID, "department_id": departmentID})
}

func RecordRefreshRun(status string) {
	if !globalManager.enabled.Load() {
		return
	}
	globalManager.refreshRuns.WithLabelValues(status).Inc()
}
