// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package models

import "time"

// Movie is a catalog entry. The catalog is read-mostly: rows are created by the
// TMDB import endpoint or seeded externally, and joined to ranking data on read.
type Movie struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	ReleaseYear *int      `json:"release_year,omitempty"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	ThumbURL    *string   `json:"thumb_url,omitempty"`
	Overview    *string   `json:"overview,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// MovieWithRanking joins a catalog entry to the caller's ranking state.
// For an authenticated caller the ranking comes from the ranking repository;
// for a guest it is overlaid from the guest interaction store.
type MovieWithRanking struct {
	Movie
	SeenIt  bool `json:"seen_it"`
	Ranking *int `json:"ranking,omitempty"`
}

// MovieFilter narrows catalog reads.
type MovieFilter struct {
	Year  *int
	Limit int
}
