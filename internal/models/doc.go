// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

// Package models defines data structures shared across the Reawarding application.
// These models represent movies, ranking rows, guest interactions, banner state,
// and award results.
package models
