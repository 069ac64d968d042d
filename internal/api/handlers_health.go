// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package api

import (
	"net/http"
	"time"
)

// HealthResponse is the payload of GET /api/v1/health.
type HealthResponse struct {
	Status             string  `json:"status"`
	UptimeSeconds      float64 `json:"uptime_seconds"`
	GuestStoreDegraded bool    `json:"guest_store_degraded"`
}

// Health reports liveness. The guest store running degraded (persistence
// medium unavailable) does not fail the check; it is surfaced so operators
// can see it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, HealthResponse{
		Status:             "ok",
		UptimeSeconds:      time.Since(h.startTime).Seconds(),
		GuestStoreDegraded: h.guest.Degraded(),
	})
}
