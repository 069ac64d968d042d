// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

/*
Package metrics provides Prometheus metrics collection and export for observability.

This package instruments the application using the Prometheus client library,
exposing metrics for monitoring performance, errors, and system health.

# Metrics Endpoint

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8380/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: Active requests (gauge)
  - api_rate_limit_hits_total: Rate limit rejections (counter)
    Labels: endpoint

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type

Guest Store Metrics:
  - guest_store_writes_total: Write operations (counter)
    Labels: operation (interaction, dismiss, migrate, clear)
  - guest_store_write_failures_total: Writes swallowed in degraded mode (counter)
  - guest_interactions_recorded_total: Meaningful interactions recorded (counter)
  - guest_interaction_count: Distinct movies the guest has touched (gauge)

Migration Metrics:
  - migration_runs_total: Migration runs (counter)
    Labels: result (success, partial, noop, failure)
  - migration_rows_migrated_total / migration_rows_failed_total: Row outcomes (counter)
  - migration_duration_seconds: Run duration (histogram)

Banner Metrics:
  - banner_evaluations_total: Arbitration evaluations (counter)
  - banner_decisions_total: Decisions by outcome (counter)
    Labels: banner (none, welcome, returning, save_prompt)
  - banner_dismissals_total: Dismissals (counter)
    Labels: kind (session, permanent)

Award Metrics:
  - award_aggregations_total / award_aggregation_duration_seconds / award_years_produced
  - nomination_saves_total: Curated nomination saves (counter)
    Labels: year

TMDB Metrics:
  - tmdb_requests_total: API calls by result (counter)
  - tmdb_request_duration_seconds: Call latency (histogram)
  - circuit_breaker_state: Current state (gauge, 0=closed 1=half-open 2=open)
  - circuit_breaker_state_transitions_total: Transitions (counter)

All metrics are registered via promauto at package init; importing this
package is enough to make them visible to the default registry.
*/
package metrics
