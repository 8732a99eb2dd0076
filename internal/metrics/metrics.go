// Package metrics exposes the service's Prometheus collectors.
//
// Feed metrics:
//   - mealfeed_feed_requests_total{path}: feeds served, path is personalized or anonymous
//   - mealfeed_feed_candidates: candidate pool size per personalized request
//   - mealfeed_feed_duration_seconds{path}: end-to-end feed assembly latency
//   - mealfeed_cache_events_total{result}: anonymous feed cache hit, miss, error
//
// HTTP metrics:
//   - mealfeed_http_requests_total{method,route,status}
//   - mealfeed_http_request_duration_seconds{method,route}
//   - mealfeed_rate_limited_total{limiter}
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	PathPersonalized = "personalized"
	PathAnonymous    = "anonymous"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	FeedRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealfeed_feed_requests_total",
			Help: "Total number of feeds served",
		},
		[]string{"path"},
	)

	FeedCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mealfeed_feed_candidates",
			Help:    "Number of candidate recipes scored per personalized feed",
			Buckets: []float64{0, 5, 10, 25, 50, 75, 100, 250, 500},
		},
	)

	FeedDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealfeed_feed_duration_seconds",
			Help:    "Time spent assembling a feed",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"path"},
	)

	CacheEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealfeed_cache_events_total",
			Help: "Anonymous feed cache lookups by result",
		},
		[]string{"result"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealfeed_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealfeed_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealfeed_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)
)

// RecordFeed records one served feed.
func RecordFeed(path string, candidates int, duration time.Duration) {
	FeedRequests.WithLabelValues(path).Inc()
	FeedDuration.WithLabelValues(path).Observe(duration.Seconds())
	if path == PathPersonalized {
		FeedCandidates.Observe(float64(candidates))
	}
}

// RecordCache records an anonymous feed cache lookup.
func RecordCache(result string) {
	CacheEvents.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records a finished HTTP request. Unmatched routes should
// be passed as "unmatched" to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRateLimited counts a rejected request.
func RecordRateLimited(limiter string) {
	RateLimited.WithLabelValues(limiter).Inc()
}
