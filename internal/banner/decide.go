// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

// Package banner decides which single informational banner, if any, a guest
// should see. The decision is re-derived from current inputs on a polling
// cadence rather than pushed event-by-event, so a banner may lag an input
// change by up to one polling interval.
package banner

// Banner is one of the four mutually exclusive banner states.
type Banner string

const (
	None       Banner = "none"
	Welcome    Banner = "welcome"
	Returning  Banner = "returning"
	SavePrompt Banner = "save_prompt"
)

// Thresholds hold the interaction counts that trigger the returning and
// save-prompt banners.
type Thresholds struct {
	Returning  int
	SavePrompt int
}

// DefaultThresholds match the shipped product behavior.
func DefaultThresholds() Thresholds {
	return Thresholds{Returning: 5, SavePrompt: 10}
}

// Inputs is a snapshot of everything arbitration looks at.
type Inputs struct {
	HasInteracted      bool
	InteractionCount   int
	DismissedSession   bool
	DismissedPermanent bool
}

// Decide returns the banner for the given inputs. The rules form a strict
// priority table; the first match wins:
//
//  1. Any dismissal -> None.
//  2. InteractionCount >= Returning threshold -> Returning.
//  3. HasInteracted and count >= SavePrompt threshold -> SavePrompt.
//  4. Never interacted -> Welcome.
//  5. Otherwise -> None.
//
// With the default thresholds, a guest with 1-4 interactions lands on rule 5
// and sees nothing: they have interacted, but have reached neither threshold.
// That gap is intentional product behavior and must not be "fixed" here.
func Decide(in Inputs, t Thresholds) Banner {
	switch {
	case in.DismissedPermanent || in.DismissedSession:
		return None
	case in.InteractionCount >= t.Returning:
		return Returning
	case in.HasInteracted && in.InteractionCount >= t.SavePrompt:
		return SavePrompt
	case !in.HasInteracted:
		return Welcome
	default:
		return None
	}
}
