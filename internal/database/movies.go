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

	"github.com/robleto/reawarding/internal/metrics"
	"github.com/robleto/reawarding/internal/models"
)

// UpsertMovie inserts or replaces a catalog entry keyed on the movie ID.
func (db *DB) UpsertMovie(ctx context.Context, movie *models.Movie) error {
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO movies (id, title, release_year, poster_url, thumb_url, overview, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			release_year = EXCLUDED.release_year,
			poster_url = EXCLUDED.poster_url,
			thumb_url = EXCLUDED.thumb_url,
			overview = EXCLUDED.overview`

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		movie.ID, movie.Title, movie.ReleaseYear,
		movie.PosterURL, movie.ThumbURL, movie.Overview, movie.CreatedAt)
	metrics.RecordDBQuery("INSERT", "movies", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert movie: %w", err)
	}
	return nil
}

// GetMovie returns a single catalog entry.
func (db *DB) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, title, release_year, poster_url, thumb_url, overview, created_at
		FROM movies WHERE id = ?`, id)

	movie, err := scanMovie(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMovieNotFound
	}
	if err != nil {
		return nil, err
	}
	return movie, nil
}

// ListMovies returns catalog entries matching the filter, newest release year
// first, title as tiebreaker.
func (db *DB) ListMovies(ctx context.Context, filter models.MovieFilter) ([]models.Movie, error) {
	query := `SELECT id, title, release_year, poster_url, thumb_url, overview, created_at
		FROM movies`
	var args []interface{}

	if filter.Year != nil {
		query += " WHERE release_year = ?"
		args = append(args, *filter.Year)
	}
	query += " ORDER BY release_year DESC NULLS LAST, title"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("SELECT", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer closeWithLog(rows, "movie rows")

	var movies []models.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, *movie)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movie rows iteration: %w", err)
	}
	return movies, nil
}

// ListMoviesWithRankings returns catalog entries joined to the given user's
// ranking state. Movies the user never touched come back with seen_it=false
// and no ranking.
func (db *DB) ListMoviesWithRankings(ctx context.Context, userID string, filter models.MovieFilter) ([]models.MovieWithRanking, error) {
	if userID == "" {
		return nil, ErrAuthRequired
	}

	query := `SELECT m.id, m.title, m.release_year, m.poster_url, m.thumb_url, m.overview, m.created_at,
			COALESCE(r.seen_it, false), r.ranking
		FROM movies m
		LEFT JOIN rankings r ON r.movie_id = m.id AND r.user_id = ?`
	args := []interface{}{userID}

	if filter.Year != nil {
		query += " WHERE m.release_year = ?"
		args = append(args, *filter.Year)
	}
	query += " ORDER BY m.release_year DESC NULLS LAST, m.title"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("SELECT", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies with rankings: %w", err)
	}
	defer closeWithLog(rows, "movie rows")

	var movies []models.MovieWithRanking
	for rows.Next() {
		var (
			m       models.MovieWithRanking
			year    sql.NullInt32
			poster  sql.NullString
			thumb   sql.NullString
			summary sql.NullString
			ranking sql.NullInt32
		)
		if err := rows.Scan(&m.ID, &m.Title, &year, &poster, &thumb, &summary,
			&m.CreatedAt, &m.SeenIt, &ranking); err != nil {
			return nil, fmt.Errorf("failed to scan movie with ranking: %w", err)
		}
		m.ReleaseYear = nullableInt(year)
		m.PosterURL = nullableString(poster)
		m.ThumbURL = nullableString(thumb)
		m.Overview = nullableString(summary)
		if ranking.Valid {
			r := int(ranking.Int32)
			m.Ranking = &r
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("movie rows iteration: %w", err)
	}
	return movies, nil
}

// ListYears returns the distinct release years present in the catalog,
// descending. minCount drops years with fewer than that many movies; years
// with at least one movie always qualify when minCount <= 1.
func (db *DB) ListYears(ctx context.Context, minCount int) ([]int, error) {
	if minCount < 1 {
		minCount = 1
	}

	query := `SELECT release_year FROM movies
		WHERE release_year IS NOT NULL
		GROUP BY release_year
		HAVING COUNT(*) >= ?
		ORDER BY release_year DESC`

	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, minCount)
	metrics.RecordDBQuery("SELECT", "movies", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to list years: %w", err)
	}
	defer closeWithLog(rows, "year rows")

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("year rows iteration: %w", err)
	}
	return years, nil
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	var (
		movie   models.Movie
		year    sql.NullInt32
		poster  sql.NullString
		thumb   sql.NullString
		summary sql.NullString
	)

	err := row.Scan(&movie.ID, &movie.Title, &year, &poster, &thumb, &summary, &movie.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	movie.ReleaseYear = nullableInt(year)
	movie.PosterURL = nullableString(poster)
	movie.ThumbURL = nullableString(thumb)
	movie.Overview = nullableString(summary)
	return &movie, nil
}

func nullableInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int32)
	return &i
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
