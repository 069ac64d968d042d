// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/robleto/reawarding/internal/metrics"
	"github.com/robleto/reawarding/internal/models"
)

// SaveNominations upserts a user's curated nomination set for a year, keyed
// on (user_id, year). At most MaxNominees nominees are allowed and a winner,
// when set, must be one of them.
func (db *DB) SaveNominations(ctx context.Context, nom *models.AwardNominations) error {
	if nom.UserID == "" {
		return ErrAuthRequired
	}
	if len(nom.NomineeIDs) > models.MaxNominees {
		return fmt.Errorf("%w: %d nominees exceeds the limit of %d",
			ErrInvalidNominations, len(nom.NomineeIDs), models.MaxNominees)
	}
	if nom.WinnerID != nil {
		found := false
		for _, id := range nom.NomineeIDs {
			if id == *nom.WinnerID {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: winner %d is not among the nominees",
				ErrInvalidNominations, *nom.WinnerID)
		}
	}

	nomineeJSON, err := json.Marshal(nom.NomineeIDs)
	if err != nil {
		return fmt.Errorf("failed to marshal nominee ids: %w", err)
	}
	nom.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO award_nominations (user_id, year, nominee_ids, winner_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, year) DO UPDATE SET
			nominee_ids = EXCLUDED.nominee_ids,
			winner_id = EXCLUDED.winner_id,
			updated_at = EXCLUDED.updated_at`

	start := time.Now()
	_, err = db.conn.ExecContext(ctx, query,
		nom.UserID, nom.Year, string(nomineeJSON), winnerValue(nom.WinnerID), nom.UpdatedAt)
	metrics.RecordDBQuery("INSERT", "award_nominations", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to save nominations: %w", err)
	}

	metrics.RecordNominationSave(nom.Year)
	return nil
}

// GetNominations returns the user's curated nomination set for a year.
func (db *DB) GetNominations(ctx context.Context, userID string, year int) (*models.AwardNominations, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	row := db.conn.QueryRowContext(ctx,
		`SELECT user_id, year, nominee_ids, winner_id, updated_at
		FROM award_nominations WHERE user_id = ? AND year = ?`, userID, year)

	var (
		nom         models.AwardNominations
		nomineeJSON string
		winner      sql.NullInt64
	)
	err := row.Scan(&nom.UserID, &nom.Year, &nomineeJSON, &winner, &nom.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNominationsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan nominations: %w", err)
	}

	if err := json.Unmarshal([]byte(nomineeJSON), &nom.NomineeIDs); err != nil {
		return nil, fmt.Errorf("corrupt nominee ids for user %s year %d: %w", userID, year, err)
	}
	if winner.Valid {
		w := winner.Int64
		nom.WinnerID = &w
	}

	return &nom, nil
}

// ListNominationYears returns the years for which the user has a saved
// nomination set, descending.
func (db *DB) ListNominationYears(ctx context.Context, userID string) ([]int, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT year FROM award_nominations WHERE user_id = ? ORDER BY year DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list nomination years: %w", err)
	}
	defer closeWithLog(rows, "nomination year rows")

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan nomination year: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("nomination year rows iteration: %w", err)
	}
	return years, nil
}

func winnerValue(w *int64) interface{} {
	if w == nil {
		return nil
	}
	return *w
}
