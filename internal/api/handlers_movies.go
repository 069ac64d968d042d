// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/robleto/reawarding/internal/cache"
	"github.com/robleto/reawarding/internal/models"
	"github.com/robleto/reawarding/internal/tmdb"
	"github.com/robleto/reawarding/internal/validation"
)

// ListMovies handles GET /api/v1/movies. Authenticated callers get their
// ranking rows joined in; anonymous callers get the guest session's
// interactions overlaid instead, so a guest sees their own ratings on the
// catalog exactly like a signed-in user would.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	userID, err := h.userIDFromRequest(r)
	if err != nil {
		respondError(w, http.StatusUnauthorized, codeAuthentication, "Invalid authentication token", err)
		return
	}

	filter := models.MovieFilter{
		Limit: getIntParam(r, "limit", 0),
	}
	if rawYear := r.URL.Query().Get("year"); rawYear != "" {
		year, convErr := strconv.Atoi(rawYear)
		if convErr != nil {
			respondError(w, http.StatusBadRequest, codeValidation, "year must be an integer", convErr)
			return
		}
		filter.Year = &year
	}

	if userID != "" {
		movies, listErr := h.catalog.ListMoviesWithRankings(r.Context(), userID, filter)
		if listErr != nil {
			respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to list movies", listErr)
			return
		}
		respondSuccess(w, http.StatusOK, movies)
		return
	}

	movies, listErr := h.catalog.ListMovies(r.Context(), filter)
	if listErr != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to list movies", listErr)
		return
	}
	respondSuccess(w, http.StatusOK, h.overlayGuestData(movies))
}

// overlayGuestData merges the guest session's interactions onto catalog rows.
func (h *Handler) overlayGuestData(movies []models.Movie) []models.MovieWithRanking {
	out := make([]models.MovieWithRanking, len(movies))
	for i, movie := range movies {
		out[i] = models.MovieWithRanking{Movie: movie}
		if in, ok := h.guest.Interaction(movie.ID); ok {
			out[i].SeenIt = in.SeenIt
			out[i].Ranking = in.Ranking
		}
	}
	return out
}

// MovieYears handles GET /api/v1/movies/years. min_count keeps years with
// fewer catalog entries out of the result. The catalog is read-mostly, so
// the result is cached briefly; imports invalidate it.
func (h *Handler) MovieYears(w http.ResponseWriter, r *http.Request) {
	minCount := getIntParam(r, "min_count", 1)

	key := cache.GenerateKey("movie_years", minCount)
	if cached, ok := h.cache.Get(key); ok {
		respondSuccess(w, http.StatusOK, cached)
		return
	}

	years, err := h.catalog.ListYears(r.Context(), minCount)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to list years", err)
		return
	}

	h.cache.Set(key, years)
	respondSuccess(w, http.StatusOK, years)
}

// ImportMovie handles POST /api/v1/movies/import: fetch metadata from TMDB
// and upsert it into the catalog.
func (h *Handler) ImportMovie(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireUser(w, r); !ok {
		return
	}
	if h.importer == nil {
		respondError(w, http.StatusServiceUnavailable, codeUpstream, "TMDB integration is not enabled", nil)
		return
	}

	var req ImportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	movie, err := h.importer.GetMovie(r.Context(), req.TMDBID)
	if err != nil {
		if errors.Is(err, tmdb.ErrMovieNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "Movie not found on TMDB", err)
			return
		}
		respondError(w, http.StatusBadGateway, codeUpstream, "TMDB request failed", err)
		return
	}

	if err := h.catalog.UpsertMovie(r.Context(), movie); err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to store movie", err)
		return
	}

	h.cache.Clear()
	respondSuccess(w, http.StatusCreated, movie)
}
