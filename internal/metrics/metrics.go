// Package metrics exposes Prometheus collectors for the scraper service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	scrapeRunsTotal            *prometheus.CounterVec
	noticesFoundTotal          *prometheus.CounterVec
	noticesNewTotal            *prometheus.CounterVec
	noticesSavedTotal          *prometheus.CounterVec
	fetchDurationSeconds       *prometheus.HistogramVec
	httpRequestsTotal          *prometheus.CounterVec
	httpRequestDurationSeconds *prometheus.HistogramVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		scrapeRunsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notice_scrape_runs_total",
				Help: "Total number of per-source scrape runs, labeled by source and status.",
			},
			[]string{"source", "status"},
		)

		noticesFoundTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notice_found_total",
				Help: "Total notices extracted from source pages, labeled by source.",
			},
			[]string{"source"},
		)

		noticesNewTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notice_new_total",
				Help: "Total notices not present in the stored snapshot, labeled by source.",
			},
			[]string{"source"},
		)

		noticesSavedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notice_saved_total",
				Help: "Total notices persisted to the store, labeled by source.",
			},
			[]string{"source"},
		)

		fetchDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notice_fetch_duration_seconds",
				Help:    "Histogram of page fetch latencies, labeled by source and mode.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"source", "mode"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)

		httpRequestDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Histogram of HTTP request latencies, labeled by method and route.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRun records the outcome of one per-source scrape run.
func ObserveRun(source, status string, found, fresh, saved int) {
	scrapeRunsTotal.WithLabelValues(source, status).Inc()
	noticesFoundTotal.WithLabelValues(source).Add(float64(found))
	noticesNewTotal.WithLabelValues(source).Add(float64(fresh))
	noticesSavedTotal.WithLabelValues(source).Add(float64(saved))
}

// ObserveFetch records the latency of a page fetch.
func ObserveFetch(source, mode string, duration time.Duration) {
	fetchDurationSeconds.WithLabelValues(source, mode).Observe(duration.Seconds())
}

// ObserveHTTPRequest increments the HTTP request metrics.
func ObserveHTTPRequest(method, route string, code int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, strconv.Itoa(code)).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route).Observe(duration.Seconds())
}
