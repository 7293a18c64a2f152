package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Business metrics
	matchSearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_searches_total",
			Help: "Total number of find-matches requests",
		},
		[]string{"role"}, // investor, startup
	)

	candidatesScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_candidates_scored_total",
			Help: "Total number of candidate profiles scored",
		},
	)

	interestActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_interest_actions_total",
			Help: "Total number of interest actions recorded",
		},
		[]string{"role", "action"}, // interested, passed
	)

	mutualMatchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mutual_matches_total",
			Help: "Total number of interest actions that reported a mutual match",
		},
	)

	profileUpsertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_upserts_total",
			Help: "Total number of profile create/update operations",
		},
		[]string{"role"},
	)
)

// HTTPMiddleware creates a middleware that records Prometheus metrics
func HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip metrics endpoint itself
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, statusCode).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path, statusCode).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RecordMatchSearch records a find-matches request for the given role.
func RecordMatchSearch(role string, candidates int) {
	matchSearchesTotal.WithLabelValues(role).Inc()
	candidatesScoredTotal.Add(float64(candidates))
}

// RecordInterestAction records an interest action and whether it produced
// (or confirmed) a mutual match.
func RecordInterestAction(role, action string, mutual bool) {
	interestActionsTotal.WithLabelValues(role, action).Inc()
	if mutual {
		mutualMatchesTotal.Inc()
	}
}

// RecordProfileUpsert records a profile create/update for the given role.
func RecordProfileUpsert(role string) {
	profileUpsertsTotal.WithLabelValues(role).Inc()
}
