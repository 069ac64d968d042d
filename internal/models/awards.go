// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package models

import "time"

// AwardRecord is the input to award aggregation: one rated movie in one year.
// Ranking may be nil; aggregation treats a nil ranking as 0 for ordering and
// never admits it to the nominee list.
type AwardRecord struct {
	MovieID int64 `json:"movie_id"`
	Year    int   `json:"year"`
	Ranking *int  `json:"ranking,omitempty"`
}

// RankedMovie is a movie reference carrying its effective ranking inside an
// award result.
type RankedMovie struct {
	MovieID int64 `json:"movie_id"`
	Ranking int   `json:"ranking"`
}

// YearAward is the derived per-year result: a winner plus up to ten nominees.
// It is computed fresh from ranking rows on every aggregation request and is
// never persisted. Every year with at least one record has a winner, even when
// the nominee list is empty.
type YearAward struct {
	Year     int           `json:"year"`
	Winner   RankedMovie   `json:"winner"`
	Nominees []RankedMovie `json:"nominees"`
}

// AwardNominations is a user's saved, hand-curated nomination set for one
// year: up to ten nominees with an optional winner drawn from them. Unlike
// YearAward this is stored state, upserted on (UserID, Year).
type AwardNominations struct {
	UserID     string    `json:"user_id"`
	Year       int       `json:"year"`
	NomineeIDs []int64   `json:"nominee_ids"`
	WinnerID   *int64    `json:"winner_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MaxNominees caps a saved nomination set, matching the aggregation's top-10
// nominee truncation.
const MaxNominees = 10
