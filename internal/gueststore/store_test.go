// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package gueststore

import (
	"context"
	"errors"
	"testing"

	"github.com/robleto/reawarding/internal/models"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

// failingMedium loads fine but refuses every save.
type failingMedium struct{}

func (failingMedium) Load(ctx context.Context) ([]byte, error) { return nil, ErrNotFound }
func (failingMedium) Save(ctx context.Context, data []byte) error {
	return errors.New("quota exceeded")
}
func (failingMedium) Close() error { return nil }

func TestRecordInteraction_PartialPatch(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, NewMemoryMedium())

	// First patch: seen only.
	in, err := s.RecordInteraction(ctx, 42, models.InteractionPatch{SeenIt: boolPtr(true)})
	if err != nil {
		t.Fatalf("RecordInteraction() error = %v", err)
	}
	if !in.SeenIt || in.Ranking != nil {
		t.Errorf("after seen patch: SeenIt=%v Ranking=%v, want true/nil", in.SeenIt, in.Ranking)
	}
	firstUpdate := in.UpdatedAt

	// Second patch: ranking only. SeenIt must be untouched.
	in, err = s.RecordInteraction(ctx, 42, models.InteractionPatch{Ranking: intPtr(8)})
	if err != nil {
		t.Fatalf("RecordInteraction() error = %v", err)
	}
	if !in.SeenIt {
		t.Error("ranking-only patch cleared SeenIt")
	}
	if in.Ranking == nil || *in.Ranking != 8 {
		t.Errorf("Ranking = %v, want 8", in.Ranking)
	}
	if !in.UpdatedAt.After(firstUpdate) {
		t.Errorf("UpdatedAt %v not after previous %v", in.UpdatedAt, firstUpdate)
	}

	// Third patch: clear the ranking with 0.
	in, err = s.RecordInteraction(ctx, 42, models.InteractionPatch{Ranking: intPtr(0)})
	if err != nil {
		t.Fatalf("RecordInteraction() error = %v", err)
	}
	if in.Ranking != nil {
		t.Errorf("Ranking = %v, want cleared", in.Ranking)
	}
	if !in.SeenIt {
		t.Error("clearing ranking cleared SeenIt too")
	}
}

func TestRecordInteraction_UpdatedAtStrictlyIncreases(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, NewMemoryMedium())

	var prev models.GuestInteraction
	for i := 0; i < 50; i++ {
		in, err := s.RecordInteraction(ctx, 1, models.InteractionPatch{SeenIt: boolPtr(i%2 == 0)})
		if err != nil {
			t.Fatalf("RecordInteraction() error = %v", err)
		}
		if i > 0 && !in.UpdatedAt.After(prev.UpdatedAt) {
			t.Fatalf("iteration %d: UpdatedAt %v not after %v", i, in.UpdatedAt, prev.UpdatedAt)
		}
		prev = in
	}
}

func TestRecordInteraction_InvalidRanking(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, NewMemoryMedium())

	for _, bad := range []int{-1, 11, 100} {
		if _, err := s.RecordInteraction(ctx, 1, models.InteractionPatch{Ranking: intPtr(bad)}); !errors.Is(err, ErrInvalidRanking) {
			t.Errorf("ranking %d: error = %v, want ErrInvalidRanking", bad, err)
		}
	}

	// The failed patch must not have created an interaction.
	if got := len(s.Interactions()); got != 0 {
		t.Errorf("interactions after invalid patches = %d, want 0", got)
	}
}

func TestInteractionCount_MeaningfulOnly(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, NewMemoryMedium())

	if s.HasInteracted() {
		t.Error("fresh store reports HasInteracted")
	}

	s.RecordInteraction(ctx, 1, models.InteractionPatch{SeenIt: boolPtr(true)})
	s.RecordInteraction(ctx, 2, models.InteractionPatch{Ranking: intPtr(7)})
	// Movie 3 is touched but ends up with nothing meaningful.
	s.RecordInteraction(ctx, 3, models.InteractionPatch{SeenIt: boolPtr(false)})

	if got := s.InteractionCount(); got != 2 {
		t.Errorf("InteractionCount() = %d, want 2", got)
	}
	if !s.HasInteracted() {
		t.Error("HasInteracted() = false with meaningful interactions present")
	}

	// Un-seeing movie 1 drops it from the count.
	s.RecordInteraction(ctx, 1, models.InteractionPatch{SeenIt: boolPtr(false)})
	if got := s.InteractionCount(); got != 1 {
		t.Errorf("after un-seeing: InteractionCount() = %d, want 1", got)
	}

	if got := s.Meta().TotalInteractions; got != 4 {
		t.Errorf("TotalInteractions = %d, want 4 (every patch counts)", got)
	}
}

func TestClear_PreservesMigrationDone(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, NewMemoryMedium())

	s.RecordInteraction(ctx, 1, models.InteractionPatch{Ranking: intPtr(9)})
	s.MarkMigrated(ctx)
	s.Clear(ctx)

	if got := len(s.Interactions()); got != 0 {
		t.Errorf("interactions after Clear = %d, want 0", got)
	}
	meta := s.Meta()
	if !meta.MigrationDone {
		t.Error("Clear reset MigrationDone")
	}
	if meta.TotalInteractions != 0 || meta.FirstInteractionAt != nil {
		t.Errorf("Clear left counters: %+v", meta)
	}

	s.ResetAll(ctx)
	if s.Meta().MigrationDone {
		t.Error("ResetAll kept MigrationDone")
	}
}

func TestClear_PreservesDismissals(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, NewMemoryMedium())

	s.RecordInteraction(ctx, 1, models.InteractionPatch{Ranking: intPtr(9)})
	s.DismissBanner()
	s.DismissPermanently(ctx)
	s.Clear(ctx)

	session, permanent := s.Dismissed()
	if !session {
		t.Error("Clear reset the session dismissal")
	}
	if !permanent {
		t.Error("Clear reset the permanent dismissal")
	}

	s.ResetAll(ctx)
	session, permanent = s.Dismissed()
	if session || permanent {
		t.Errorf("ResetAll kept dismissals: session=%v permanent=%v", session, permanent)
	}
}

func TestDismissals(t *testing.T) {
	ctx := context.Background()
	medium := NewMemoryMedium()
	s := New(ctx, medium)

	s.DismissBanner()
	session, permanent := s.Dismissed()
	if !session || permanent {
		t.Errorf("after DismissBanner: session=%v permanent=%v, want true/false", session, permanent)
	}

	s.DismissPermanently(ctx)
	if _, permanent = s.Dismissed(); !permanent {
		t.Error("DismissPermanently not reflected")
	}

	// A new store on the same medium sees the permanent dismissal but not
	// the session one.
	s2 := New(ctx, medium)
	session, permanent = s2.Dismissed()
	if session {
		t.Error("session dismissal survived restart")
	}
	if !permanent {
		t.Error("permanent dismissal lost on restart")
	}

	// Clearing guest data clears the permanent dismissal too.
	s2.Clear(ctx)
	if _, permanent = s2.Dismissed(); permanent {
		t.Error("Clear kept permanent dismissal")
	}
}

func TestDegradedMode_WritesNeverFail(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, failingMedium{})

	in, err := s.RecordInteraction(ctx, 7, models.InteractionPatch{Ranking: intPtr(10)})
	if err != nil {
		t.Fatalf("RecordInteraction() on failing medium error = %v, want nil", err)
	}
	if in.Ranking == nil || *in.Ranking != 10 {
		t.Errorf("Ranking = %v, want 10", in.Ranking)
	}
	if !s.Degraded() {
		t.Error("Degraded() = false after persist failure")
	}

	// In-memory state stays authoritative for the session.
	got, ok := s.Interaction(7)
	if !ok || got.Ranking == nil || *got.Ranking != 10 {
		t.Errorf("Interaction(7) = %+v, %v; want the recorded interaction", got, ok)
	}
}

func TestBadgerMedium_Roundtrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	medium, err := OpenBadgerMedium(dir, false)
	if err != nil {
		t.Fatalf("OpenBadgerMedium() error = %v", err)
	}

	s := New(ctx, medium)
	s.RecordInteraction(ctx, 42, models.InteractionPatch{SeenIt: boolPtr(true), Ranking: intPtr(8)})
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	medium, err = OpenBadgerMedium(dir, false)
	if err != nil {
		t.Fatalf("reopen OpenBadgerMedium() error = %v", err)
	}
	defer medium.Close()

	s2 := New(ctx, medium)
	in, ok := s2.Interaction(42)
	if !ok {
		t.Fatal("interaction lost across restart")
	}
	if !in.SeenIt || in.Ranking == nil || *in.Ranking != 8 {
		t.Errorf("restored interaction = %+v, want seen with ranking 8", in)
	}
	if got := s2.InteractionCount(); got != 1 {
		t.Errorf("InteractionCount() after restore = %d, want 1", got)
	}
}

func TestBadgerMedium_InMemory(t *testing.T) {
	medium, err := OpenBadgerMedium("", true)
	if err != nil {
		t.Fatalf("OpenBadgerMedium(in-memory) error = %v", err)
	}
	defer medium.Close()

	ctx := context.Background()
	if err := medium.Save(ctx, []byte(`{"meta":{}}`)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := medium.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(data) == 0 {
		t.Error("Load() returned empty data")
	}
}
