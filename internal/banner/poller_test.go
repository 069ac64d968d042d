// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package banner

import (
	"context"
	"sync"
	"testing"
	"time"
)

// stubSource is a mutable Source for poller tests.
type stubSource struct {
	mu        sync.Mutex
	count     int
	session   bool
	permanent bool
}

func (s *stubSource) HasInteracted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count > 0
}

func (s *stubSource) InteractionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}

func (s *stubSource) Dismissed() (bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session, s.permanent
}

func (s *stubSource) set(count int, session, permanent bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.count, s.session, s.permanent = count, session, permanent
}

func TestPoller_InitialState(t *testing.T) {
	p := NewPoller(&stubSource{}, DefaultThresholds(), time.Second)
	if got := p.Current(); got != Welcome {
		t.Errorf("Current() on fresh source = %q, want %q", got, Welcome)
	}
}

func TestPoller_PicksUpInputChanges(t *testing.T) {
	source := &stubSource{}
	p := NewPoller(source, DefaultThresholds(), 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- p.Serve(ctx) }()

	source.set(6, false, false)

	deadline := time.After(2 * time.Second)
	for p.Current() != Returning {
		select {
		case <-deadline:
			t.Fatalf("poller never reached %q, stuck at %q", Returning, p.Current())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("Serve() returned %v, want context.Canceled", err)
	}
}

func TestPoller_RefreshBypassesCadence(t *testing.T) {
	source := &stubSource{}
	source.set(6, false, false)
	// Huge interval: only Refresh can change the cached state.
	p := NewPoller(source, DefaultThresholds(), time.Hour)

	if got := p.Current(); got != Returning {
		t.Fatalf("initial Current() = %q, want %q", got, Returning)
	}

	source.set(6, true, false)
	if got := p.Refresh(); got != None {
		t.Errorf("Refresh() after dismissal = %q, want %q", got, None)
	}
	if got := p.Current(); got != None {
		t.Errorf("Current() after Refresh = %q, want %q", got, None)
	}
}
