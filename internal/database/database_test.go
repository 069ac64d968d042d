// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package database

import (
	"context"
	"testing"
	"time"

	"github.com/robleto/reawarding/internal/config"
	"github.com/robleto/reawarding/internal/models"
)

// testDBSemaphore serializes database creation. Concurrent DuckDB CGO calls
// under test parallelism can hang in constrained CI environments.
var testDBSemaphore = make(chan struct{}, 1)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}
	db, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return db
}

func seedMovie(t *testing.T, db *DB, id int64, title string, year int) {
	t.Helper()
	y := year
	if err := db.UpsertMovie(context.Background(), &models.Movie{
		ID:          id,
		Title:       title,
		ReleaseYear: &y,
	}); err != nil {
		t.Fatalf("UpsertMovie(%d) error = %v", id, err)
	}
}

func TestNew_InMemory(t *testing.T) {
	db := setupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestUpsertMovie_Roundtrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	poster := "https://image.tmdb.org/t/p/w500/poster.jpg"
	year := 2024
	movie := &models.Movie{
		ID:          603,
		Title:       "The Matrix Resurrections",
		ReleaseYear: &year,
		PosterURL:   &poster,
	}
	if err := db.UpsertMovie(ctx, movie); err != nil {
		t.Fatalf("UpsertMovie() error = %v", err)
	}

	got, err := db.GetMovie(ctx, 603)
	if err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}
	if got.Title != movie.Title {
		t.Errorf("Title = %q, want %q", got.Title, movie.Title)
	}
	if got.ReleaseYear == nil || *got.ReleaseYear != 2024 {
		t.Errorf("ReleaseYear = %v, want 2024", got.ReleaseYear)
	}
	if got.PosterURL == nil || *got.PosterURL != poster {
		t.Errorf("PosterURL = %v, want %q", got.PosterURL, poster)
	}

	// Upsert with the same ID replaces fields.
	movie.Title = "The Matrix"
	if err := db.UpsertMovie(ctx, movie); err != nil {
		t.Fatalf("second UpsertMovie() error = %v", err)
	}
	got, err = db.GetMovie(ctx, 603)
	if err != nil {
		t.Fatalf("GetMovie() after update error = %v", err)
	}
	if got.Title != "The Matrix" {
		t.Errorf("Title after update = %q, want %q", got.Title, "The Matrix")
	}
}

func TestGetMovie_NotFound(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.GetMovie(context.Background(), 999); err != ErrMovieNotFound {
		t.Errorf("GetMovie(999) error = %v, want ErrMovieNotFound", err)
	}
}

func TestListMovies_FilterAndOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seedMovie(t, db, 1, "Dune: Part Two", 2024)
	seedMovie(t, db, 2, "Anora", 2024)
	seedMovie(t, db, 3, "Oppenheimer", 2023)

	all, err := db.ListMovies(ctx, models.MovieFilter{})
	if err != nil {
		t.Fatalf("ListMovies() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListMovies() returned %d movies, want 3", len(all))
	}
	// 2024 titles first, alphabetical within a year.
	if all[0].Title != "Anora" || all[1].Title != "Dune: Part Two" || all[2].Title != "Oppenheimer" {
		t.Errorf("unexpected order: %q, %q, %q", all[0].Title, all[1].Title, all[2].Title)
	}

	year := 2023
	filtered, err := db.ListMovies(ctx, models.MovieFilter{Year: &year})
	if err != nil {
		t.Fatalf("ListMovies(year=2023) error = %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != 3 {
		t.Errorf("ListMovies(year=2023) = %+v, want only Oppenheimer", filtered)
	}

	limited, err := db.ListMovies(ctx, models.MovieFilter{Limit: 2})
	if err != nil {
		t.Fatalf("ListMovies(limit=2) error = %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("ListMovies(limit=2) returned %d movies", len(limited))
	}
}

func TestListYears_MinCount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	seedMovie(t, db, 1, "A", 2024)
	seedMovie(t, db, 2, "B", 2024)
	seedMovie(t, db, 3, "C", 2023)

	years, err := db.ListYears(ctx, 1)
	if err != nil {
		t.Fatalf("ListYears(1) error = %v", err)
	}
	if len(years) != 2 || years[0] != 2024 || years[1] != 2023 {
		t.Errorf("ListYears(1) = %v, want [2024 2023]", years)
	}

	years, err = db.ListYears(ctx, 2)
	if err != nil {
		t.Fatalf("ListYears(2) error = %v", err)
	}
	if len(years) != 1 || years[0] != 2024 {
		t.Errorf("ListYears(2) = %v, want [2024]", years)
	}
}
