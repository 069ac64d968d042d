// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

// Package middleware provides HTTP middleware in the classic
// func(http.HandlerFunc) http.HandlerFunc shape. The api package adapts
// these to Chi's func(http.Handler) http.Handler where needed.
package middleware
