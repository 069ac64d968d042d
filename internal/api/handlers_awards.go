// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/robleto/reawarding/internal/awards"
	"github.com/robleto/reawarding/internal/database"
	"github.com/robleto/reawarding/internal/models"
	"github.com/robleto/reawarding/internal/validation"
)

// Awards handles GET /api/v1/awards: the computed per-year winner and
// nominee lists, derived fresh from the caller's ranking rows on every
// request. Nothing about this result is persisted.
func (h *Handler) Awards(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	minCount := 0
	if raw := r.URL.Query().Get("min_count"); raw != "" {
		var err error
		minCount, err = strconv.Atoi(raw)
		if err != nil || minCount < 0 {
			respondError(w, http.StatusBadRequest, codeValidation, "min_count must be a non-negative integer", err)
			return
		}
	}

	records, err := h.awardSource.ListAwardRecords(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to load award records", err)
		return
	}

	result := awards.FilterByRecordCount(awards.Aggregate(records), records, minCount)
	respondSuccess(w, http.StatusOK, result)
}

// GetNominations handles GET /api/v1/awards/nominations. With a year query
// parameter it returns that year's saved set; without one it returns the
// years that have a saved set.
func (h *Handler) GetNominations(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	rawYear := r.URL.Query().Get("year")
	if rawYear == "" {
		years, err := h.nominations.ListNominationYears(r.Context(), userID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to list nomination years", err)
			return
		}
		respondSuccess(w, http.StatusOK, years)
		return
	}

	year, err := strconv.Atoi(rawYear)
	if err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "year must be an integer", err)
		return
	}

	nom, err := h.nominations.GetNominations(r.Context(), userID, year)
	if err != nil {
		if errors.Is(err, database.ErrNominationsNotFound) {
			respondError(w, http.StatusNotFound, codeNotFound, "No nominations saved for that year", err)
			return
		}
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to load nominations", err)
		return
	}

	respondSuccess(w, http.StatusOK, nom)
}

// SaveNominations handles POST /api/v1/awards/nominations: upsert the
// curated nominee set for one year. At most ten nominees; the winner, when
// set, must be one of them.
func (h *Handler) SaveNominations(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req NominationsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	nom := &models.AwardNominations{
		UserID:     userID,
		Year:       req.Year,
		NomineeIDs: req.NomineeIDs,
		WinnerID:   req.WinnerID,
		UpdatedAt:  time.Now().UTC(),
	}

	if err := h.nominations.SaveNominations(r.Context(), nom); err != nil {
		if errors.Is(err, database.ErrInvalidNominations) {
			respondError(w, http.StatusBadRequest, codeValidation, "Winner must be one of the nominees", err)
			return
		}
		respondError(w, http.StatusInternalServerError, codeDatabase, "Failed to save nominations", err)
		return
	}

	respondSuccess(w, http.StatusOK, nom)
}
