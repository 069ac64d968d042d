// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package api

import (
	"net/http"

	"github.com/robleto/reawarding/internal/validation"
)

// SignInResponse carries the bearer token issued for a session.
type SignInResponse struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// SignIn handles POST /api/v1/session/signin. Authentication itself happens
// at an external provider; this endpoint exchanges the provider-verified
// user ID for a bearer token and announces the sign-in transition, which is
// what arms the guest data migration.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	if h.jwt == nil {
		respondError(w, http.StatusServiceUnavailable, codeAuthentication, "Authentication is not configured", nil)
		return
	}

	var req SignInRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, codeValidation, "Invalid request body", err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidationError(w, verr)
		return
	}

	token, err := h.jwt.GenerateToken(req.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternal, "Failed to issue token", err)
		return
	}

	h.notifier.SetCurrent(req.UserID)

	respondSuccess(w, http.StatusOK, SignInResponse{
		UserID: req.UserID,
		Token:  token,
	})
}

// SignOut handles POST /api/v1/session/signout. The sign-out transition
// resets the migration latch so the next sign-in can migrate again.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.notifier.SetCurrent("")
	respondSuccess(w, http.StatusOK, map[string]string{"status": "signed_out"})
}
