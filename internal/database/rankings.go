// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/robleto/reawarding/internal/metrics"
	"github.com/robleto/reawarding/internal/models"
)

// UpsertRanking writes a user's ranking row for a movie. The conflict key is
// exactly (user_id, movie_id): replaying the same upsert any number of times
// leaves the row in the same final state, and a later upsert fully replaces
// the prior seen_it and ranking values.
func (db *DB) UpsertRanking(ctx context.Context, userID string, movieID int64, seenIt bool, ranking *int) (*models.RankingRecord, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}
	if !models.ValidRanking(ranking) {
		return nil, fmt.Errorf("ranking %d out of range 1-10", *ranking)
	}

	record := &models.RankingRecord{
		ID:        uuid.New(),
		UserID:    userID,
		MovieID:   movieID,
		SeenIt:    seenIt,
		UpdatedAt: time.Now().UTC(),
	}
	if ranking != nil {
		r := *ranking
		record.Ranking = &r
	}

	query := `INSERT INTO rankings (id, user_id, movie_id, seen_it, ranking, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, movie_id) DO UPDATE SET
			seen_it = EXCLUDED.seen_it,
			ranking = EXCLUDED.ranking,
			updated_at = EXCLUDED.updated_at`

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		record.ID.String(), record.UserID, record.MovieID,
		record.SeenIt, rankingValue(record.Ranking), record.UpdatedAt)
	metrics.RecordDBQuery("INSERT", "rankings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert ranking: %w", err)
	}

	// Read back so the caller sees the stored row, including the original
	// id when the upsert hit an existing row.
	stored, err := db.getRanking(ctx, userID, movieID)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// ListRankings returns the user's ranking rows, optionally filtered to a set
// of movie IDs. Rows come back ordered by movie ID for stable output.
func (db *DB) ListRankings(ctx context.Context, userID string, movieIDs []int64) ([]models.RankingRecord, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	query := `SELECT id, user_id, movie_id, seen_it, ranking, updated_at
		FROM rankings WHERE user_id = ?`
	args := []interface{}{userID}

	if len(movieIDs) > 0 {
		placeholders := make([]string, len(movieIDs))
		for i, id := range movieIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		query += fmt.Sprintf(" AND movie_id IN (%s)", strings.Join(placeholders, ", "))
	}
	query += " ORDER BY movie_id"

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("SELECT", "rankings", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}
	defer closeWithLog(rows, "rankings rows")

	var records []models.RankingRecord
	for rows.Next() {
		record, err := scanRanking(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ranking rows iteration: %w", err)
	}

	return records, nil
}

func (db *DB) getRanking(ctx context.Context, userID string, movieID int64) (*models.RankingRecord, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, movie_id, seen_it, ranking, updated_at
		FROM rankings WHERE user_id = ? AND movie_id = ?`, userID, movieID)
	return scanRanking(row)
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRanking(row rowScanner) (*models.RankingRecord, error) {
	var (
		record  models.RankingRecord
		idStr   string
		ranking sql.NullInt32
	)

	if err := row.Scan(&idStr, &record.UserID, &record.MovieID,
		&record.SeenIt, &ranking, &record.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan ranking: %w", err)
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ranking id %q: %w", idStr, err)
	}
	record.ID = id

	if ranking.Valid {
		r := int(ranking.Int32)
		record.Ranking = &r
	}

	return &record, nil
}

// rankingValue converts an optional ranking to the driver value.
func rankingValue(r *int) interface{} {
	if r == nil {
		return nil
	}
	return *r
}
