// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// Guest Store Metrics
	GuestStoreWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guest_store_writes_total",
			Help: "Total number of guest store write operations",
		},
		[]string{"operation"}, // "interaction", "dismiss", "migrate", "clear"
	)

	GuestStoreWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guest_store_write_failures_total",
			Help: "Total number of guest store writes swallowed in degraded mode",
		},
	)

	GuestInteractionsRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guest_interactions_recorded_total",
			Help: "Total number of meaningful guest interactions recorded",
		},
	)

	GuestInteractionCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "guest_interaction_count",
			Help: "Current number of distinct movies the guest has interacted with",
		},
	)

	// Migration Metrics
	MigrationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "migration_runs_total",
			Help: "Total number of guest-to-account migration runs",
		},
		[]string{"result"}, // "success", "partial", "noop", "failure"
	)

	MigrationRowsMigrated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "migration_rows_migrated_total",
			Help: "Total number of guest rankings migrated into accounts",
		},
	)

	MigrationRowsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "migration_rows_failed_total",
			Help: "Total number of guest rankings that failed to migrate",
		},
	)

	MigrationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "migration_duration_seconds",
			Help:    "Duration of migration runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Banner Metrics
	BannerEvaluations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "banner_evaluations_total",
			Help: "Total number of banner arbitration evaluations",
		},
	)

	BannerDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "banner_decisions_total",
			Help: "Total number of banner decisions by outcome",
		},
		[]string{"banner"}, // "none", "welcome", "returning", "save_prompt"
	)

	BannerDismissals = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "banner_dismissals_total",
			Help: "Total number of banner dismissals",
		},
		[]string{"kind"}, // "session", "permanent"
	)

	// Award Aggregation Metrics
	AwardAggregations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "award_aggregations_total",
			Help: "Total number of award aggregation runs",
		},
	)

	AwardAggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "award_aggregation_duration_seconds",
			Help:    "Duration of award aggregation runs in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	AwardYearsProduced = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "award_years_produced",
			Help:    "Number of award years produced per aggregation run",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
	)

	NominationSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nomination_saves_total",
			Help: "Total number of curated nomination saves",
		},
		[]string{"year"},
	)

	// TMDB Client Metrics
	TMDBRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_requests_total",
			Help: "Total number of TMDB API requests",
		},
		[]string{"result"}, // "success", "failure", "rejected"
	)

	TMDBRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "Duration of TMDB API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordGuestWrite records a guest store write and its outcome. Degraded-mode
// failures are counted separately so a dying disk shows up on the dashboard
// even though the API keeps answering.
func RecordGuestWrite(operation string, err error) {
	GuestStoreWrites.WithLabelValues(operation).Inc()
	if err != nil {
		GuestStoreWriteFailures.Inc()
	}
}

// RecordMigration records the outcome of a migration run
func RecordMigration(migrated, failed int, duration time.Duration) {
	MigrationDuration.Observe(duration.Seconds())
	MigrationRowsMigrated.Add(float64(migrated))
	MigrationRowsFailed.Add(float64(failed))

	result := "noop"
	switch {
	case migrated > 0 && failed == 0:
		result = "success"
	case migrated > 0 && failed > 0:
		result = "partial"
	case migrated == 0 && failed > 0:
		result = "failure"
	}
	MigrationRuns.WithLabelValues(result).Inc()
}

// RecordBannerDecision records a banner arbitration outcome
func RecordBannerDecision(banner string) {
	BannerEvaluations.Inc()
	BannerDecisions.WithLabelValues(banner).Inc()
}

// RecordAwardAggregation records an award aggregation run
func RecordAwardAggregation(years int, duration time.Duration) {
	AwardAggregations.Inc()
	AwardAggregationDuration.Observe(duration.Seconds())
	AwardYearsProduced.Observe(float64(years))
}

// RecordNominationSave records a curated nomination save for a year
func RecordNominationSave(year int) {
	NominationSaves.WithLabelValues(strconv.Itoa(year)).Inc()
}

// RecordTMDBRequest records a TMDB API call and its outcome
func RecordTMDBRequest(result string, duration time.Duration) {
	TMDBRequests.WithLabelValues(result).Inc()
	TMDBRequestDuration.Observe(duration.Seconds())
}
