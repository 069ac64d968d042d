// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package api

import (
	"errors"
	"net/http"

	"github.com/robleto/reawarding/internal/gueststore"
	"github.com/robleto/reawarding/internal/models"
	"github.com/robleto/reawarding/internal/validation"
)

// RecordInteraction handles POST /api/v1/guest/interactions. No identity is
// required; the guest session is server-side state. Fields absent from the
// body leave the stored values untouched, and a ranking of 0 clears the
// stored ranking.
func (h *Handler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	var req InteractionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	interaction, err := h.guest.RecordInteraction(r.Context(), req.MovieID, models.InteractionPatch{
		SeenIt:  req.SeenIt,
		Ranking: req.Ranking,
	})
	if err != nil {
		if errors.Is(err, gueststore.ErrInvalidRanking) {
			respondError(w, http.StatusBadRequest, codeValidation, "Ranking must be 0-10", err)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to record interaction", err)
		return
	}

	respondSuccess(w, http.StatusOK, interaction)
}

// GuestSessionResponse is the payload of GET /api/v1/guest/interactions.
type GuestSessionResponse struct {
	Interactions []models.GuestInteraction `json:"interactions"`
	Count        int                       `json:"count"`
	Meta         models.GuestSessionMeta   `json:"meta"`
}

// ListInteractions handles GET /api/v1/guest/interactions. Count is the
// meaningful-interaction count the banner engine arbitrates on, not the
// length of the list.
func (h *Handler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, GuestSessionResponse{
		Interactions: h.guest.Interactions(),
		Count:        h.guest.InteractionCount(),
		Meta:         h.guest.Meta(),
	})
}

// BannerResponse is the payload of the banner endpoints.
type BannerResponse struct {
	Banner string `json:"banner"`
}

// Banner handles GET /api/v1/banner: the latest arbitrated banner state.
func (h *Handler) Banner(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, BannerResponse{Banner: string(h.banner.Current())})
}

// DismissBanner handles POST /api/v1/banner/dismiss: suppress banners for
// the rest of this session, then re-arbitrate immediately.
func (h *Handler) DismissBanner(w http.ResponseWriter, r *http.Request) {
	h.guest.DismissBanner()
	respondSuccess(w, http.StatusOK, BannerResponse{Banner: string(h.banner.Refresh())})
}

// DismissBannerPermanently handles POST /api/v1/banner/dismiss-permanent:
// suppress banners across sessions.
func (h *Handler) DismissBannerPermanently(w http.ResponseWriter, r *http.Request) {
	h.guest.DismissPermanently(r.Context())
	respondSuccess(w, http.StatusOK, BannerResponse{Banner: string(h.banner.Refresh())})
}

// Migrate handles POST /api/v1/migrate: transfer the guest session's
// interactions to the authenticated account. The engine runs at most once
// per sign-in; repeated calls report Skipped.
func (h *Handler) Migrate(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	result := h.migrator.Run(r.Context(), userID)
	respondSuccess(w, http.StatusOK, result)
}
