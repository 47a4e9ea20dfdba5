// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package scorer

import (
	"time"

	"github.com/contentscore/validator/briefcontracts"
	"github.com/contentscore/validator/config"
	"github.com/contentscore/validator/ids"
)

// BriefScore implements spec §4.5.3 over every brief created within
// cfg.BriefScoreWindow of now: each Valid BriefSubmission contributes
// `(speed + selection) * quality`, and a miner's score is the arithmetic
// mean of that total across their qualifying submissions — recomputed
// fresh each call, not a running pairwise average.
func BriefScore(briefs []briefcontracts.Brief, submissionsByBrief map[string][]briefcontracts.BriefSubmission, now time.Time, cfg config.Config) map[ids.Hotkey]float64 {
	sums := make(map[ids.Hotkey]float64)
	counts := make(map[ids.Hotkey]int)

	for _, brief := range briefs {
		if now.Sub(brief.CreatedAt) > cfg.BriefScoreWindow {
			continue
		}

		for _, sub := range submissionsByBrief[brief.BriefID] {
			if sub.Validation != briefcontracts.ValidationValid {
				continue
			}

			total := (speedComponent(brief.CreatedAt, sub.SubmittedAt) + selectionComponent(brief, sub.MinerHotkey)) * sub.QualityOrDefault()
			sums[sub.MinerHotkey] += total
			counts[sub.MinerHotkey]++
		}
	}

	out := make(map[ids.Hotkey]float64, len(sums))
	for hotkey, sum := range sums {
		out[hotkey] = sum / float64(counts[hotkey])
	}
	return out
}

// speedComponent is 30 for a submission within the first hour after brief
// creation, linearly decaying to 0 at 24h.
func speedComponent(createdAt, submittedAt time.Time) float64 {
	elapsed := submittedAt.Sub(createdAt)
	if elapsed <= time.Hour {
		return 30
	}
	if elapsed >= 24*time.Hour {
		return 0
	}
	remaining := 24*time.Hour - elapsed
	window := 24*time.Hour - time.Hour
	return 30 * float64(remaining) / float64(window)
}

// selectionComponent is 0/30/40/70 depending on brief selection membership.
func selectionComponent(brief briefcontracts.Brief, hotkey ids.Hotkey) float64 {
	var total float64
	if brief.InTopSelected(hotkey) {
		total += 30
	}
	if brief.InFinalSelected(hotkey) {
		total += 40
	}
	return total
}
