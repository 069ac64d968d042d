// Reawarding - Personal Movie Ratings and Year-End Awards
// Copyright 2026 Robleto
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/robleto/reawarding

// Package awards turns ranking rows into per-year winner and nominee lists.
// Aggregation is a pure transform: results are computed fresh on every call
// and never persisted.
package awards

import (
	"sort"
	"time"

	"github.com/robleto/reawarding/internal/metrics"
	"github.com/robleto/reawarding/internal/models"
)

// NomineeThreshold is the minimum ranking required for a movie to appear in a
// year's nominee list.
const NomineeThreshold = 7

// Aggregate groups records by year and derives each year's winner and
// nominees:
//
//   - Within a year, records sort descending by ranking; ties keep input
//     order (no secondary key).
//   - Nominees are the records ranked >= NomineeThreshold, capped at
//     models.MaxNominees after the sort.
//   - The winner is the top nominee, falling back to the top of the full
//     sorted group so every year with at least one record has a winner.
//   - A nil ranking sorts as 0 and can never be a nominee.
//
// Years come back descending. Years with zero records never appear.
func Aggregate(records []models.AwardRecord) []models.YearAward {
	start := time.Now()

	byYear := make(map[int][]models.RankedMovie)
	for _, record := range records {
		ranking := 0
		if record.Ranking != nil {
			ranking = *record.Ranking
		}
		byYear[record.Year] = append(byYear[record.Year], models.RankedMovie{
			MovieID: record.MovieID,
			Ranking: ranking,
		})
	}

	out := make([]models.YearAward, 0, len(byYear))
	for year, group := range byYear {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Ranking > group[j].Ranking
		})

		var nominees []models.RankedMovie
		for _, m := range group {
			if m.Ranking >= NomineeThreshold {
				nominees = append(nominees, m)
			}
			if len(nominees) == models.MaxNominees {
				break
			}
		}

		winner := group[0]
		if len(nominees) > 0 {
			winner = nominees[0]
		}

		out = append(out, models.YearAward{
			Year:     year,
			Winner:   winner,
			Nominees: nominees,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Year > out[j].Year })

	metrics.RecordAwardAggregation(len(out), time.Since(start))
	return out
}

// FilterByRecordCount drops years with fewer than minCount source records.
// The awards page hides sparse years this way while Aggregate itself stays
// complete. minCount <= 1 returns the input unchanged.
func FilterByRecordCount(awards []models.YearAward, records []models.AwardRecord, minCount int) []models.YearAward {
	if minCount <= 1 {
		return awards
	}

	counts := make(map[int]int, len(awards))
	for _, record := range records {
		counts[record.Year]++
	}

	out := make([]models.YearAward, 0, len(awards))
	for _, award := range awards {
		if counts[award.Year] >= minCount {
			out = append(out, award)
		}
	}
	return out
}
