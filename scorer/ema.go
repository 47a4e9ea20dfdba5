// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package scorer implements the three pure functions of spec §4.5: the
// per-content EMA score with chain-reset semantics, the per-miner
// engagement-rate aggregator, and the per-miner brief-score aggregator.
// None of these functions touch the store or any collaborator directly;
// they operate on values the orchestrator reads beforehand, which keeps
// them deterministic and trivially testable (spec §8: "for all valid EMA
// inputs, the function is deterministic").
package scorer

import (
	"github.com/contentscore/validator/config"
	"github.com/contentscore/validator/ids"
	"github.com/contentscore/validator/metricclient"
	"github.com/contentscore/validator/store"
)

// EMAScore implements spec §4.5.1 over p's series in ascending interval
// order: score tracks growth between consecutive valid observations, not
// absolute magnitude, so static cached view counts earn nothing; any
// interval that fails the signature or AI-authenticity gate resets both
// the score and the running baseline.
func EMAScore(p store.Performance, hotkey ids.Hotkey, cfg config.Config) float64 {
	var score float64
	var prev *int64

	for _, key := range p.SortedIntervals() {
		m := p.Series[key]
		if !cfg.AllowsPlatform(m.PlatformTag) {
			continue
		}

		if !ValidObservation(m, hotkey, cfg) {
			score = 0
			prev = nil
			continue
		}

		v := m.ToScalar()
		if prev == nil {
			baseline := v
			prev = &baseline
			continue
		}

		delta := float64(v - *prev)
		score = cfg.EMAAlpha*delta + (1-cfg.EMAAlpha)*score
		*prev = v
	}

	return score
}

// ValidObservation reports whether m passes the signature and
// AI-authenticity gates for hotkey: the same per-interval validity test
// EMAScore applies inside its chain-reset loop. The engagement-rate
// aggregator's "most recent interval only" rule in this package uses it
// too, and it is exported so the orchestrator's activity-tracker updates
// share one definition of "valid" instead of re-deriving it.
func ValidObservation(m metricclient.Metric, hotkey ids.Hotkey, cfg config.Config) bool {
	return cfg.AllowsPlatform(m.PlatformTag) && m.CheckSignature(hotkey, cfg) && m.AIScore > cfg.AIGeneratedScoreThreshold
}
