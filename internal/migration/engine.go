// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

// Package migration moves guest interactions into the authenticated ranking
// store, exactly once per sign-in.
package migration

import (
	"context"
	"sync"
	"time"

	"github.com/robleto/reawarding/internal/logging"
	"github.com/robleto/reawarding/internal/metrics"
	"github.com/robleto/reawarding/internal/models"
)

// GuestSource is the slice of the guest store the engine needs. Satisfied by
// *gueststore.Store.
type GuestSource interface {
	HasInteracted() bool
	Interactions() []models.GuestInteraction
	MarkMigrated(ctx context.Context)
	Clear(ctx context.Context)
}

// RankingSink receives the migrated rows. Satisfied by *database.DB.
type RankingSink interface {
	UpsertRanking(ctx context.Context, userID string, movieID int64, seenIt bool, ranking *int) (*models.RankingRecord, error)
}

// Result reports a migration run to the caller so it can show a confirmation.
type Result struct {
	Success       bool `json:"success"`
	MigratedCount int  `json:"migrated_count"`
	FailedCount   int  `json:"failed_count"`
	// Skipped is true when the run did nothing: the latch had already
	// fired, another run was in flight, or there was nothing to migrate.
	Skipped bool `json:"skipped,omitempty"`
}

// Engine performs the one-shot transfer. The latch is in-memory and per
// runtime instance: it trips when a migration completes and resets on
// sign-out, so the same sign-in can never migrate twice but a fresh sign-in
// after sign-out can.
type Engine struct {
	source GuestSource
	sink   RankingSink

	mu       sync.Mutex
	done     bool
	inFlight bool
}

func NewEngine(source GuestSource, sink RankingSink) *Engine {
	return &Engine{source: source, sink: sink}
}

// Reset clears the latch. Call on sign-out; a mid-flight run is unaffected
// (its already-upserted rows are keyed to the user that was active and are
// harmless).
func (e *Engine) Reset() {
	e.mu.Lock()
	e.done = false
	e.mu.Unlock()
}

// Run migrates all guest interactions into userID's rankings. Guest data
// overwrites any existing remote row for the same (user, movie) pair: guest
// activity is assumed to be the action that led to sign-up, hence the more
// recent. Per-row failures are logged and skipped; the batch never aborts.
//
// Run is a no-op when userID is empty, the guest has no interactions, the
// latch has fired, or another run is in flight.
func (e *Engine) Run(ctx context.Context, userID string) Result {
	if userID == "" || !e.source.HasInteracted() {
		return Result{Skipped: true}
	}

	e.mu.Lock()
	if e.done || e.inFlight {
		e.mu.Unlock()
		return Result{Skipped: true}
	}
	e.inFlight = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inFlight = false
		e.mu.Unlock()
	}()

	start := time.Now()
	interactions := e.source.Interactions()

	migrated, failed := 0, 0
	for _, in := range interactions {
		if _, err := e.sink.UpsertRanking(ctx, userID, in.MovieID, in.SeenIt, in.Ranking); err != nil {
			failed++
			logging.Warn().Err(err).
				Str("user_id", userID).
				Int64("movie_id", in.MovieID).
				Msg("Failed to migrate guest ranking, skipping row")
			continue
		}
		migrated++
	}

	metrics.RecordMigration(migrated, failed, time.Since(start))

	result := Result{MigratedCount: migrated, FailedCount: failed}
	if migrated > 0 {
		// Ownership of the migrated rows has transferred; the local
		// copies are authoritative for nothing and go away. The latch
		// trips only on an actual transfer.
		e.source.MarkMigrated(ctx)
		e.source.Clear(ctx)
		e.mu.Lock()
		e.done = true
		e.mu.Unlock()
		result.Success = true

		logging.Info().
			Str("user_id", userID).
			Int("migrated", migrated).
			Int("failed", failed).
			Msg("Guest interactions migrated")
	}

	return result
}
