// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/robleto/reawarding/internal/metrics"
	"github.com/robleto/reawarding/internal/models"
)

// ListAwardRecords returns the user's ranking rows joined to movie release
// years, the raw input for award aggregation. Rows whose movie has no release
// year are skipped since they cannot be placed in a year group. Order is by
// updated_at ascending so aggregation ties break on the oldest rating first.
func (db *DB) ListAwardRecords(ctx context.Context, userID string) ([]models.AwardRecord, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	query := `SELECT r.movie_id, m.release_year, r.ranking
		FROM rankings r
		JOIN movies m ON m.id = r.movie_id
		WHERE r.user_id = ? AND m.release_year IS NOT NULL
		ORDER BY r.updated_at`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, userID)
	metrics.RecordDBQuery("SELECT", "rankings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list award records: %w", err)
	}
	defer closeWithLog(rows, "award record rows")

	var records []models.AwardRecord
	for rows.Next() {
		var (
			record  models.AwardRecord
			ranking sql.NullInt32
		)
		if err := rows.Scan(&record.MovieID, &record.Year, &ranking); err != nil {
			return nil, fmt.Errorf("failed to scan award record: %w", err)
		}
		if ranking.Valid {
			r := int(ranking.Int32)
			record.Ranking = &r
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("award record rows iteration: %w", err)
	}
	return records, nil
}
