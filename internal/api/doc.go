// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

// Package api provides the HTTP surface: a Chi router, request validation,
// the standard response envelope, and handlers for rankings, the movie
// catalog, awards, guest interactions, banner arbitration, and migration.
package api
