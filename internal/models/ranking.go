// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package models

import (
	"time"

	"github.com/google/uuid"
)

// Ranking bounds. A ranking is an integer 1-10 or null (unranked).
const (
	MinRanking = 1
	MaxRanking = 10
)

// RankingRecord is the authoritative per-user per-movie ranking row.
//
// Identity is the (UserID, MovieID) pair; the row ID exists only so individual
// rows can be referenced by clients. Writes are idempotent upserts keyed on
// (UserID, MovieID): a second upsert with the same key fully replaces the prior
// seen_it and ranking values (last write wins), it never merges fields silently.
type RankingRecord struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	MovieID   int64     `json:"movie_id"`
	SeenIt    bool      `json:"seen_it"`
	Ranking   *int      `json:"ranking,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidRanking reports whether r is inside the allowed 1-10 range.
// A nil pointer (unranked) is always valid.
func ValidRanking(r *int) bool {
	if r == nil {
		return true
	}
	return *r >= MinRanking && *r <= MaxRanking
}
