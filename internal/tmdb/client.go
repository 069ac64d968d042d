// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

// Package tmdb fetches movie metadata from The Movie Database for catalog
// imports. Calls are rate limited and wrapped in a circuit breaker so a slow
// or failing TMDB cannot stall imports indefinitely.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/robleto/reawarding/internal/config"
	"github.com/robleto/reawarding/internal/logging"
	"github.com/robleto/reawarding/internal/metrics"
	"github.com/robleto/reawarding/internal/models"
)

const (
	posterBaseURL = "https://image.tmdb.org/t/p/w500"
	thumbBaseURL  = "https://image.tmdb.org/t/p/w200"
)

// ErrMovieNotFound is returned when TMDB has no movie with the requested ID.
var ErrMovieNotFound = errors.New("tmdb movie not found")

// movieResponse mirrors the fields of TMDB's movie details payload we use.
type movieResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"` // "2006-01-02"
}

// Client talks to the TMDB API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	cb         *gobreaker.CircuitBreaker[*movieResponse]
}

// NewClient builds a client from the TMDB configuration. The circuit opens
// after a 60% failure rate over at least 10 requests and probes again after
// two minutes.
func NewClient(cfg *config.TMDBConfig) *Client {
	cbName := "tmdb-api"
	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 4
	}

	cb := gobreaker.NewCircuitBreaker[*movieResponse](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("TMDB circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cb:         cb,
	}
}

// GetMovie fetches movie details and maps them onto the catalog model.
func (c *Client) GetMovie(ctx context.Context, id int64) (*models.Movie, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("tmdb rate limit wait: %w", err)
	}

	start := time.Now()
	resp, err := c.cb.Execute(func() (*movieResponse, error) {
		return c.fetchMovie(ctx, id)
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordTMDBRequest("rejected", time.Since(start))
		return nil, fmt.Errorf("tmdb unavailable: %w", err)
	case err != nil:
		metrics.RecordTMDBRequest("failure", time.Since(start))
		return nil, err
	}

	metrics.RecordTMDBRequest("success", time.Since(start))
	return mapMovie(resp), nil
}

func (c *Client) fetchMovie(ctx context.Context, id int64) (*movieResponse, error) {
	url := fmt.Sprintf("%s/movie/%d?api_key=%s", c.baseURL, id, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("tmdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrMovieNotFound
	default:
		return nil, fmt.Errorf("tmdb returned status %d", resp.StatusCode)
	}

	var movie movieResponse
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, fmt.Errorf("tmdb response decode: %w", err)
	}
	return &movie, nil
}

func mapMovie(resp *movieResponse) *models.Movie {
	movie := &models.Movie{
		ID:    resp.ID,
		Title: resp.Title,
	}
	if resp.Overview != "" {
		o := resp.Overview
		movie.Overview = &o
	}
	if resp.PosterPath != "" {
		poster := posterBaseURL + resp.PosterPath
		thumb := thumbBaseURL + resp.PosterPath
		movie.PosterURL = &poster
		movie.ThumbURL = &thumb
	}
	if len(resp.ReleaseDate) >= 4 {
		if t, err := time.Parse("2006-01-02", resp.ReleaseDate); err == nil {
			year := t.Year()
			movie.ReleaseYear = &year
		}
	}
	return movie
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
