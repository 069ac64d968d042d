// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

// Package gueststore holds a guest's ratings and seen flags before they have
// an account. The data lives in a single blob on a pluggable key-value Medium;
// if the medium fails the store degrades to in-memory-only behavior for the
// rest of the session rather than surfacing errors to rating actions.
package gueststore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/robleto/reawarding/internal/logging"
	"github.com/robleto/reawarding/internal/metrics"
	"github.com/robleto/reawarding/internal/models"
)

// ErrInvalidRanking is returned when a patch carries a ranking outside 0-10
// (0 meaning "clear").
var ErrInvalidRanking = errors.New("ranking must be between 1 and 10, or 0 to clear")

// sessionBlob is the persisted form of the whole guest session.
type sessionBlob struct {
	Interactions         map[int64]models.GuestInteraction `json:"interactions"`
	Meta                 models.GuestSessionMeta           `json:"meta"`
	DismissedPermanently bool                              `json:"dismissed_permanently"`
}

// Store is the local interaction store. All methods are safe for concurrent
// use. Persistence failures never propagate out of mutating methods; they are
// logged, counted, and the in-memory state stays authoritative for the
// session (degraded mode).
type Store struct {
	mu     sync.RWMutex
	medium Medium

	interactions map[int64]models.GuestInteraction
	meta         models.GuestSessionMeta

	// dismissedSession is deliberately not persisted; it dies with the
	// process the way a session-scoped dismissal dies with the browser tab.
	dismissedSession     bool
	dismissedPermanently bool

	degraded bool
}

// New loads any previously saved guest session from medium and returns the
// store. A medium that fails to load is not fatal: the store starts empty in
// degraded mode.
func New(ctx context.Context, medium Medium) *Store {
	s := &Store{
		medium:       medium,
		interactions: make(map[int64]models.GuestInteraction),
	}

	data, err := medium.Load(ctx)
	switch {
	case errors.Is(err, ErrNotFound):
		// Fresh session.
	case err != nil:
		logging.Warn().Err(err).Msg("Guest store load failed, starting empty in degraded mode")
		s.degraded = true
	default:
		var blob sessionBlob
		if err := json.Unmarshal(data, &blob); err != nil {
			logging.Warn().Err(err).Msg("Guest session blob corrupt, starting empty")
		} else {
			if blob.Interactions != nil {
				s.interactions = blob.Interactions
			}
			s.meta = blob.Meta
			s.dismissedPermanently = blob.DismissedPermanently
		}
	}

	return s
}

// RecordInteraction creates the interaction for movieID if absent and applies
// the non-nil patch fields. UpdatedAt strictly increases across successive
// patches of the same movie. The returned interaction is the post-patch
// state; the only possible error is ranking validation.
func (s *Store) RecordInteraction(ctx context.Context, movieID int64, patch models.InteractionPatch) (models.GuestInteraction, error) {
	if patch.Ranking != nil && (*patch.Ranking < 0 || *patch.Ranking > models.MaxRanking) {
		return models.GuestInteraction{}, ErrInvalidRanking
	}

	s.mu.Lock()

	in, existed := s.interactions[movieID]
	if !existed {
		in = models.GuestInteraction{MovieID: movieID}
	}

	if patch.SeenIt != nil {
		in.SeenIt = *patch.SeenIt
	}
	if patch.Ranking != nil {
		if *patch.Ranking == 0 {
			in.Ranking = nil
		} else {
			r := *patch.Ranking
			in.Ranking = &r
		}
	}

	now := time.Now().UTC()
	if existed && !now.After(in.UpdatedAt) {
		now = in.UpdatedAt.Add(time.Nanosecond)
	}
	in.UpdatedAt = now

	s.interactions[movieID] = in
	s.meta.TotalInteractions++
	if s.meta.FirstInteractionAt == nil && in.Meaningful() {
		t := now
		s.meta.FirstInteractionAt = &t
	}

	s.mu.Unlock()

	metrics.GuestInteractionsRecorded.Inc()
	metrics.GuestInteractionCount.Set(float64(s.InteractionCount()))
	s.persist(ctx, "interaction")

	return in, nil
}

// Interactions returns the current guest interactions sorted by movie ID.
func (s *Store) Interactions() []models.GuestInteraction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.GuestInteraction, 0, len(s.interactions))
	for _, in := range s.interactions {
		out = append(out, in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovieID < out[j].MovieID })
	return out
}

// Interaction returns the interaction for a single movie, if any.
func (s *Store) Interaction(movieID int64) (models.GuestInteraction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, ok := s.interactions[movieID]
	return in, ok
}

// InteractionCount returns the number of meaningful interactions: movies
// marked seen or given a ranking. Movies touched and then fully cleared do
// not count.
func (s *Store) InteractionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, in := range s.interactions {
		if in.Meaningful() {
			count++
		}
	}
	return count
}

// HasInteracted reports whether the guest has at least one meaningful
// interaction.
func (s *Store) HasInteracted() bool {
	return s.InteractionCount() > 0
}

// Meta returns a copy of the session meta.
func (s *Store) Meta() models.GuestSessionMeta {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meta
}

// MarkMigrated records that migration completed successfully. Survives Clear
// so a later session does not re-offer migration of data that is already
// gone.
func (s *Store) MarkMigrated(ctx context.Context) {
	s.mu.Lock()
	s.meta.MigrationDone = true
	s.mu.Unlock()
	s.persist(ctx, "migrate")
}

// Clear removes all interactions and resets the session counters after a
// successful migration. The migration-done flag and both dismissal flags
// survive: a guest who dismissed the banner before signing up stays
// dismissed after their data migrates. Only ResetAll wipes dismissals.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.interactions = make(map[int64]models.GuestInteraction)
	s.meta = models.GuestSessionMeta{MigrationDone: s.meta.MigrationDone}
	s.mu.Unlock()

	metrics.GuestInteractionCount.Set(0)
	s.persist(ctx, "clear")
}

// ResetAll wipes the guest session completely, including the migration-done
// flag. Used when the user explicitly clears their guest data.
func (s *Store) ResetAll(ctx context.Context) {
	s.mu.Lock()
	s.interactions = make(map[int64]models.GuestInteraction)
	s.meta = models.GuestSessionMeta{}
	s.dismissedSession = false
	s.dismissedPermanently = false
	s.mu.Unlock()

	metrics.GuestInteractionCount.Set(0)
	s.persist(ctx, "clear")
}

// DismissBanner dismisses the current banner for the rest of this session.
func (s *Store) DismissBanner() {
	s.mu.Lock()
	s.dismissedSession = true
	s.mu.Unlock()
	metrics.BannerDismissals.WithLabelValues("session").Inc()
}

// DismissPermanently dismisses banners until the guest data is cleared.
func (s *Store) DismissPermanently(ctx context.Context) {
	s.mu.Lock()
	s.dismissedPermanently = true
	s.mu.Unlock()
	metrics.BannerDismissals.WithLabelValues("permanent").Inc()
	s.persist(ctx, "dismiss")
}

// Dismissed returns the session-scoped and permanent dismissal flags.
func (s *Store) Dismissed() (session, permanent bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dismissedSession, s.dismissedPermanently
}

// Degraded reports whether a persistence failure has occurred this session.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

// Close flushes state and closes the medium.
func (s *Store) Close(ctx context.Context) error {
	s.persist(ctx, "close")
	return s.medium.Close()
}

// persist writes the current blob to the medium. Failures are swallowed: the
// rating action that triggered the write must not fail because a disk did.
func (s *Store) persist(ctx context.Context, operation string) {
	s.mu.RLock()
	blob := sessionBlob{
		Interactions:         s.interactions,
		Meta:                 s.meta,
		DismissedPermanently: s.dismissedPermanently,
	}
	data, err := json.Marshal(blob)
	s.mu.RUnlock()

	if err == nil {
		err = s.medium.Save(ctx, data)
	}
	metrics.RecordGuestWrite(operation, err)

	if err != nil {
		s.mu.Lock()
		if !s.degraded {
			logging.Warn().Err(err).Str("operation", operation).
				Msg("Guest store persist failed, continuing in-memory only")
		}
		s.degraded = true
		s.mu.Unlock()
	}
}
