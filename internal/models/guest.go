// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package models

import "time"

// GuestInteraction is a single guest's rating and/or seen flag for one movie,
// recorded before the user has an account. At most one exists per movie within
// a guest session; it is created on the first rating or seen-toggle action,
// patched in place afterwards, and destroyed on successful migration or an
// explicit reset.
type GuestInteraction struct {
	MovieID   int64     `json:"movie_id"`
	SeenIt    bool      `json:"seen_it"`
	Ranking   *int      `json:"ranking,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Meaningful reports whether the interaction counts toward the guest's
// interaction count: the movie was marked seen or given a ranking.
func (g GuestInteraction) Meaningful() bool {
	return g.SeenIt || g.Ranking != nil
}

// InteractionPatch carries the fields of a partial guest interaction update.
// Nil fields are left untouched. A Ranking of 0 clears the ranking back to
// unranked, mirroring the null ranking the clients send.
type InteractionPatch struct {
	SeenIt  *bool `json:"seen_it,omitempty"`
	Ranking *int  `json:"ranking,omitempty"`
}

// GuestSessionMeta tracks session-level guest state alongside the interaction
// records. TotalInteractions counts every recorded patch over the lifetime of
// the guest data, which can exceed the number of distinct movies touched.
type GuestSessionMeta struct {
	TotalInteractions  int        `json:"total_interactions"`
	FirstInteractionAt *time.Time `json:"first_interaction_at,omitempty"`
	MigrationDone      bool       `json:"migration_done"`
}
