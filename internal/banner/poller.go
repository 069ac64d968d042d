// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

package banner

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/robleto/reawarding/internal/logging"
	"github.com/robleto/reawarding/internal/metrics"
)

// Source supplies the arbitration inputs. Satisfied by *gueststore.Store.
type Source interface {
	HasInteracted() bool
	InteractionCount() int
	Dismissed() (session, permanent bool)
}

// Poller re-evaluates the banner decision on a fixed cadence and caches the
// result. It runs as a supervised service; the supervisor restarts it if it
// crashes.
type Poller struct {
	source     Source
	thresholds Thresholds
	interval   time.Duration
	current    atomic.Value // Banner
}

// NewPoller creates a poller that evaluates every interval. The initial
// cached state is computed immediately so Current never returns an empty
// value.
func NewPoller(source Source, thresholds Thresholds, interval time.Duration) *Poller {
	p := &Poller{
		source:     source,
		thresholds: thresholds,
		interval:   interval,
	}
	p.current.Store(p.evaluate())
	return p
}

// Current returns the most recently computed banner state. Staleness is
// bounded by the polling interval.
func (p *Poller) Current() Banner {
	return p.current.Load().(Banner)
}

// Refresh recomputes the decision immediately, outside the polling cadence.
// Dismissal endpoints call this so a dismissed banner disappears in the same
// request rather than one tick later.
func (p *Poller) Refresh() Banner {
	b := p.evaluate()
	p.current.Store(b)
	return b
}

// Serve implements suture.Service.
func (p *Poller) Serve(ctx context.Context) error {
	logging.Debug().Dur("interval", p.interval).Msg("Banner poller starting")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			prev := p.Current()
			next := p.evaluate()
			p.current.Store(next)
			if next != prev {
				logging.Debug().
					Str("from", string(prev)).
					Str("to", string(next)).
					Msg("Banner state changed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (p *Poller) String() string {
	return "banner-poller"
}

func (p *Poller) evaluate() Banner {
	session, permanent := p.source.Dismissed()
	b := Decide(Inputs{
		HasInteracted:      p.source.HasInteracted(),
		InteractionCount:   p.source.InteractionCount(),
		DismissedSession:   session,
		DismissedPermanent: permanent,
	}, p.thresholds)
	metrics.RecordBannerDecision(string(b))
	return b
}
