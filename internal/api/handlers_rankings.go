// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/robleto/reawarding/internal/database"
	"github.com/robleto/reawarding/internal/validation"
)

// UpsertRanking handles POST /api/v1/rankings. Writes are idempotent upserts
// keyed on (user, movie); replaying the same body leaves the row unchanged.
func (h *Handler) UpsertRanking(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req RankingRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	record, err := h.rankings.UpsertRanking(r.Context(), userID, req.MovieID, req.SeenIt, req.Ranking)
	if err != nil {
		if errors.Is(err, database.ErrAuthRequired) {
			respondError(w, http.StatusUnauthorized, codeAuthentication, "Authentication required", err)
			return
		}
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to save ranking", err)
		return
	}

	respondSuccess(w, http.StatusOK, record)
}

// ListRankings handles GET /api/v1/rankings. An optional movie_ids query
// parameter (comma-separated) narrows the result.
func (h *Handler) ListRankings(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	movieIDs, err := parseMovieIDs(r.URL.Query().Get("movie_ids"))
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "movie_ids must be a comma-separated list of integers", err)
		return
	}

	records, err := h.rankings.ListRankings(r.Context(), userID, movieIDs)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to list rankings", err)
		return
	}

	respondSuccess(w, http.StatusOK, records)
}

func parseMovieIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
