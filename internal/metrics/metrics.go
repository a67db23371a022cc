// Package metrics exposes Prometheus collectors for the API and domain services.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tastemap"

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	recommendations     prometheus.Histogram
	recommendationCache *prometheus.CounterVec
	unlocks             *prometheus.CounterVec
	lockConflicts       prometheus.Counter
	photoUploads        *prometheus.CounterVec
}

// New registers every collector on a private registry so tests can build
// as many instances as they like.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recommendations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommendations_returned",
			Help:      "Number of recommendations returned per request.",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100},
		}),
		recommendationCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendation_cache_total",
			Help:      "Recommendation cache lookups by result.",
		}, []string{"result"}),
		unlocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "achievements_unlocked_total",
			Help:      "Achievement unlocks by achievement id.",
		}, []string{"achievement"}),
		lockConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "achievement_evaluation_conflicts_total",
			Help:      "Evaluations rejected because one was already running for the user.",
		}),
		photoUploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photo_uploads_total",
			Help:      "Photo upload flow events by stage.",
		}, []string{"stage"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.recommendations,
		m.recommendationCache,
		m.unlocks,
		m.lockConflicts,
		m.photoUploads,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRecommendations(n int) {
	m.recommendations.Observe(float64(n))
}

func (m *Metrics) RecordCache(result string) {
	m.recommendationCache.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordUnlock(achievementID string) {
	m.unlocks.WithLabelValues(achievementID).Inc()
}

func (m *Metrics) RecordLockConflict() {
	m.lockConflicts.Inc()
}

func (m *Metrics) RecordPhoto(stage string) {
	m.photoUploads.WithLabelValues(stage).Inc()
}
