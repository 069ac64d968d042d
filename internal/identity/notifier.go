// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package identity

import (
	"sync"

	"github.com/robleto/reawarding/internal/logging"
)

// Notifier tracks the current user identity and tells subscribers when it
// transitions. An empty user ID means no one is signed in. The migration
// engine subscribes to run on sign-in and reset its latch on sign-out.
type Notifier struct {
	mu          sync.RWMutex
	current     string
	subscribers []func(userID string)
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// CurrentUserID returns the active user ID, or "" when signed out.
func (n *Notifier) CurrentUserID() string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.current
}

// Subscribe registers a callback invoked on every identity transition with
// the new user ID ("" for sign-out). Callbacks run synchronously on the
// goroutine that caused the transition, in registration order.
func (n *Notifier) Subscribe(fn func(userID string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subscribers = append(n.subscribers, fn)
}

// SetCurrent records a new identity. Setting the same ID again is a no-op;
// subscribers only hear actual transitions.
func (n *Notifier) SetCurrent(userID string) {
	n.mu.Lock()
	if n.current == userID {
		n.mu.Unlock()
		return
	}
	prev := n.current
	n.current = userID
	subscribers := make([]func(string), len(n.subscribers))
	copy(subscribers, n.subscribers)
	n.mu.Unlock()

	if userID == "" {
		logging.Info().Str("previous_user", prev).Msg("User signed out")
	} else {
		logging.Info().Str("user_id", userID).Msg("User signed in")
	}

	for _, fn := range subscribers {
		fn(userID)
	}
}
