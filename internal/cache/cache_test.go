// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package cache

import (
	"testing"
	"time"
)

func TestCacheRoundtrip(t *testing.T) {
	c := New(time.Minute)

	c.Set("years", []int{2024, 2023})
	got, ok := c.Get("years")
	if !ok {
		t.Fatal("expected hit")
	}
	years := got.([]int)
	if len(years) != 2 || years[0] != 2024 {
		t.Errorf("got %v", years)
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(time.Minute)
	if _, ok := c.Get("absent"); ok {
		t.Error("expected miss")
	}

	hits, misses := c.Stats()
	if hits != 0 || misses != 1 {
		t.Errorf("stats = (%d, %d), want (0, 1)", hits, misses)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("k", 1)

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should have expired")
	}
}

func TestCacheClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("Clear should drop all entries")
	}
}

func TestCacheCleanup(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.Set("stale", 1)
	time.Sleep(20 * time.Millisecond)
	c.Set("fresh", 2)

	if dropped := c.Cleanup(); dropped != 1 {
		t.Errorf("Cleanup dropped %d, want 1", dropped)
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry should survive cleanup")
	}
}

func TestGenerateKeyStable(t *testing.T) {
	a := GenerateKey("movies", map[string]int{"year": 2024})
	b := GenerateKey("movies", map[string]int{"year": 2024})
	if a != b {
		t.Errorf("same params produced %q and %q", a, b)
	}
	if a == GenerateKey("movies", map[string]int{"year": 2023}) {
		t.Error("different params should produce different keys")
	}
}
