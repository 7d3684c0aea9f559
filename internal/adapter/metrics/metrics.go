package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LeaderboardMetrics holds all Prometheus metrics for the leaderboard service.
type LeaderboardMetrics struct {
	SubmissionsCreated prometheus.Counter
	SubmissionsDeleted prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	StorageOpDuration  *prometheus.HistogramVec
}

// NewLeaderboardMetrics initializes and registers the Prometheus metrics.
func NewLeaderboardMetrics() *LeaderboardMetrics {
	return &LeaderboardMetrics{
		SubmissionsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "leaderboard",
			Subsystem: "submissions",
			Name:      "created_total",
			Help:      "Total number of submissions created.",
		}),
		SubmissionsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "leaderboard",
			Subsystem: "submissions",
			Name:      "deleted_total",
			Help:      "Total number of submission delete requests.",
		}),
		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaderboard",
			Subsystem: "submissions",
			Name:      "validation_failures_total",
			Help:      "Total number of rejected submissions by reason.",
		}, []string{"reason"}), // reason: missing_csm, missing_company, no_integrations, duplicate
		StorageOpDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "leaderboard",
			Subsystem: "storage",
			Name:      "operation_duration_seconds",
			Help:      "Duration of storage adapter operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}), // operation: exists, create, delete, list, distinct_csms
	}
}
