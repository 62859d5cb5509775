package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsSnapshot is a lightweight summary served alongside health checks.
type MetricsSnapshot struct {
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	ActiveSessions           int64     `json:"activeSessions"`
	StoreHitRatio            float64   `json:"storeHitRatio"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeLatency    *prometheus.HistogramVec
	storeHits       prometheus.Counter
	storeMisses     prometheus.Counter
	transitions     *prometheus.CounterVec
	reviewActions   *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	wfhApprovals    *prometheus.CounterVec
	reportJobs      *prometheus.CounterVec

	storeHitCount        uint64
	storeMissCount       uint64
	requestCount         uint64
	requestDurationTotal uint64
	sessionCount         int64
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	storeLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "session_store_latency_seconds",
		Help:    "Latency for session store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	storeHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "session_store_hits_total",
		Help: "Session lookups that found a session",
	})

	storeMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "session_store_misses_total",
		Help: "Session lookups for unknown or expired sessions",
	})

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "navigation_transitions_total",
		Help: "Navigation events by source screen, event and outcome",
	}, []string{"from", "event", "outcome"})

	reviewActions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "review_actions_total",
		Help: "Review actions applied to panel items",
	}, []string{"panel", "action"})

	activeSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sessions_active",
		Help: "Sessions created and not yet ended by this instance",
	})

	wfhApprovals := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wfh_approvals_total",
		Help: "WFH time-in approvals by outcome",
	}, []string{"outcome"})

	reportJobs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_jobs_total",
		Help: "Records division report jobs by type and final status",
	}, []string{"type", "status"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeLatency, storeHits, storeMisses, transitions, reviewActions, activeSessions, wfhApprovals, reportJobs, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeLatency:    storeLatency,
		storeHits:       storeHits,
		storeMisses:     storeMisses,
		transitions:     transitions,
		reviewActions:   reviewActions,
		activeSessions:  activeSessions,
		wfhApprovals:    wfhApprovals,
		reportJobs:      reportJobs,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveStore records a session store operation. hit is only meaningful for loads.
func (m *MetricsService) ObserveStore(op string, hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeLatency.WithLabelValues(op).Observe(duration.Seconds())
	if op != "load" {
		return
	}
	if hit {
		m.storeHits.Inc()
		atomic.AddUint64(&m.storeHitCount, 1)
	} else {
		m.storeMisses.Inc()
		atomic.AddUint64(&m.storeMissCount, 1)
	}
}

// RecordTransition counts a navigation event outcome.
func (m *MetricsService) RecordTransition(from, event string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.transitions.WithLabelValues(from, event, outcome).Inc()
}

// RecordReviewAction counts a status change on a panel item.
func (m *MetricsService) RecordReviewAction(panel, action string) {
	if m == nil {
		return
	}
	m.reviewActions.WithLabelValues(panel, action).Inc()
}

// SessionStarted increments the active session gauge.
func (m *MetricsService) SessionStarted() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
	atomic.AddInt64(&m.sessionCount, 1)
}

// SessionEnded decrements the active session gauge.
func (m *MetricsService) SessionEnded() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
	atomic.AddInt64(&m.sessionCount, -1)
}

// RecordWFH counts a WFH approval outcome: approved, cancelled or replaced.
func (m *MetricsService) RecordWFH(outcome string) {
	if m == nil {
		return
	}
	m.wfhApprovals.WithLabelValues(outcome).Inc()
}

// RecordReportJob counts a finished report job.
func (m *MetricsService) RecordReportJob(reportType, status string) {
	if m == nil {
		return
	}
	m.reportJobs.WithLabelValues(reportType, status).Inc()
}

// Snapshot returns aggregated metrics suitable for health endpoints.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	hits := atomic.LoadUint64(&m.storeHitCount)
	misses := atomic.LoadUint64(&m.storeMissCount)
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)

	var hitRatio float64
	if total := hits + misses; total > 0 {
		hitRatio = float64(hits) / float64(total)
	}

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}

	return MetricsSnapshot{
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		ActiveSessions:           atomic.LoadInt64(&m.sessionCount),
		StoreHitRatio:            hitRatio,
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
