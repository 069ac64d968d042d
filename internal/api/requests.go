// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package api

// RankingRequest is the body of POST /api/v1/rankings. Ranking is 1-10 or
// null; null clears the ranking while keeping the seen flag.
type RankingRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
	SeenIt  bool  `json:"seen_it"`
	Ranking *int  `json:"ranking" validate:"omitempty,min=1,max=10"`
}

// InteractionRequest is the body of POST /api/v1/guest/interactions. Both
// fields are optional patches; a Ranking of 0 clears the stored ranking.
type InteractionRequest struct {
	MovieID int64 `json:"movie_id" validate:"required,gt=0"`
	SeenIt  *bool `json:"seen_it"`
	Ranking *int  `json:"ranking" validate:"omitempty,min=0,max=10"`
}

// NominationsRequest is the body of POST /api/v1/awards/nominations.
type NominationsRequest struct {
	Year       int     `json:"year" validate:"required,gte=1888,lte=2100"`
	NomineeIDs []int64 `json:"nominee_ids" validate:"max=10,dive,gt=0"`
	WinnerID   *int64  `json:"winner_id" validate:"omitempty,gt=0"`
}

// ImportRequest is the body of POST /api/v1/movies/import.
type ImportRequest struct {
	TMDBID int64 `json:"tmdb_id" validate:"required,gt=0"`
}

// SignInRequest is the body of POST /api/v1/session/signin. The user ID
// comes from the external authentication provider.
type SignInRequest struct {
	UserID string `json:"user_id" validate:"required,min=1,max=128"`
}
