package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "skillswap_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// SwapTransitionsTotal counts swap status transitions by origin and target status.
	SwapTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transitions_total",
		Help: "Total number of swap status transitions",
	}, []string{"from", "to"})

	// SwapTransitionConflicts counts transition attempts that matched no row
	// (already transitioned, wrong actor, or missing swap).
	SwapTransitionConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skillswap_swap_transition_conflicts_total",
		Help: "Total number of swap transitions rejected by the conditional update",
	}, []string{"to"})

	// RatingsRecordedTotal counts ratings successfully recorded.
	RatingsRecordedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_ratings_recorded_total",
		Help: "Total number of ratings recorded",
	})

	// SwapsCreatedTotal counts swap requests created.
	SwapsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "skillswap_swaps_created_total",
		Help: "Total number of swap requests created",
	})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// RecordTransition increments the transition counter for a successful status change.
func RecordTransition(from, to string) {
	SwapTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordTransitionConflict increments the conflict counter for a rejected status change.
func RecordTransitionConflict(to string) {
	SwapTransitionConflicts.WithLabelValues(to).Inc()
}
