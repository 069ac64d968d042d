// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/robleto/reawarding/internal/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.TMDBConfig{
		BaseURL:           serverURL,
		APIKey:            "test-key",
		Timeout:           5 * time.Second,
		RequestsPerSecond: 100,
	})
}

func TestGetMovie_MapsResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("api_key") != "test-key" {
			t.Error("api key missing from request")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": 603,
			"title": "The Matrix",
			"overview": "A computer hacker learns the truth.",
			"poster_path": "/matrix.jpg",
			"release_date": "1999-03-30"
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	movie, err := client.GetMovie(context.Background(), 603)
	if err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}

	if movie.ID != 603 || movie.Title != "The Matrix" {
		t.Errorf("movie = %+v", movie)
	}
	if movie.ReleaseYear == nil || *movie.ReleaseYear != 1999 {
		t.Errorf("ReleaseYear = %v, want 1999", movie.ReleaseYear)
	}
	if movie.PosterURL == nil || *movie.PosterURL != posterBaseURL+"/matrix.jpg" {
		t.Errorf("PosterURL = %v", movie.PosterURL)
	}
	if movie.ThumbURL == nil || *movie.ThumbURL != thumbBaseURL+"/matrix.jpg" {
		t.Errorf("ThumbURL = %v", movie.ThumbURL)
	}
	if movie.Overview == nil || *movie.Overview == "" {
		t.Error("Overview not mapped")
	}
}

func TestGetMovie_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.GetMovie(context.Background(), 999); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("GetMovie() error = %v, want ErrMovieNotFound", err)
	}
}

func TestGetMovie_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.GetMovie(context.Background(), 603); err == nil {
		t.Error("GetMovie() succeeded on a 500 response")
	}
}

func TestGetMovie_EmptyOptionalFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 1, "title": "Untitled"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	movie, err := client.GetMovie(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetMovie() error = %v", err)
	}
	if movie.ReleaseYear != nil || movie.PosterURL != nil || movie.Overview != nil {
		t.Errorf("optional fields should stay nil: %+v", movie)
	}
}
