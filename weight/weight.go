// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package weight implements the two-path eligibility and normalization
// algorithm of spec §4.6: percentile thresholds over the engagement-rate
// and brief-score populations, brief-disqualification of engagement-only
// miners against a just-completed brief, combined scoring, and
// conversion to the chain's fixed-point integer weight vector.
package weight

import (
	"sort"
	"time"

	"github.com/contentscore/validator/briefcontracts"
	"github.com/contentscore/validator/config"
	"github.com/contentscore/validator/ids"
)

// Inputs bundles everything Distribute needs to compute one publish
// cycle's weight vector.
type Inputs struct {
	// Active is the set A of spec §4.6: miners with a valid submission or
	// valid brief submission within the recency window, intersected with
	// current metagraph membership.
	Active map[ids.Hotkey]struct{}

	// Engagement and Brief are the E and B maps, keyed by hotkey. A miner
	// in Active with no entry in either map scores 0 on it. A miner with no
	// Brief entry is not on the brief path and does not count toward the
	// brief-score percentile.
	Engagement map[ids.Hotkey]float64
	Brief      map[ids.Hotkey]float64

	// RecentCompletedBrief is the most recent completed brief, used for
	// the disqualification rule in step 4. Present reports whether one
	// exists at all (a young network may have none).
	RecentCompletedBrief        briefcontracts.Brief
	RecentCompletedBriefPresent bool
	RecentCompletedBriefSubmitters map[ids.Hotkey]struct{}

	// UIDs is every uid in the current metagraph, with its hotkey.
	UIDs map[ids.UID]ids.Hotkey

	Now time.Time
}

// Result is Distribute's output: the weight vector plus the eligible set,
// for telemetry and logging.
type Result struct {
	UIDs     []ids.UID
	Weights  []uint16
	Eligible map[ids.Hotkey]struct{}
}

// Distribute implements spec §4.6 steps 1-6. Callers publish Result via
// the chain adapter (step 7) themselves. An empty Result with ok == false means
// step 1's "|A| == 0, skip the publication cycle" fired.
func Distribute(in Inputs, cfg config.Config) (Result, bool) {
	if len(in.Active) == 0 {
		return Result{}, false
	}

	activeList := make([]ids.Hotkey, 0, len(in.Active))
	for hotkey := range in.Active {
		activeList = append(activeList, hotkey)
	}

	tauE := threshold(valuesFor(activeList, in.Engagement), cfg.MinPopulationForPercentile)
	briefList := make([]ids.Hotkey, 0, len(activeList))
	for _, hotkey := range activeList {
		if _, ok := in.Brief[hotkey]; ok {
			briefList = append(briefList, hotkey)
		}
	}
	tauB := threshold(valuesFor(briefList, in.Brief), cfg.MinPopulationForPercentile)

	pathA := make(map[ids.Hotkey]struct{}) // brief path
	pathB := make(map[ids.Hotkey]struct{}) // engagement path
	for _, hotkey := range activeList {
		if b, ok := in.Brief[hotkey]; ok && b >= tauB {
			pathA[hotkey] = struct{}{}
		}
		if in.Engagement[hotkey] >= tauE {
			pathB[hotkey] = struct{}{}
		}
	}

	eligible := make(map[ids.Hotkey]struct{}, len(pathA)+len(pathB))
	for hotkey := range pathA {
		eligible[hotkey] = struct{}{}
	}
	for hotkey := range pathB {
		eligible[hotkey] = struct{}{}
	}

	disqualify(eligible, pathA, pathB, in, cfg)

	scores := make(map[ids.Hotkey]float64, len(eligible))
	for hotkey := range eligible {
		scores[hotkey] = 0.7*in.Engagement[hotkey] + 0.3*in.Brief[hotkey]
	}

	uids, weights := toWeightVector(in.UIDs, scores, cfg)

	return Result{UIDs: uids, Weights: weights, Eligible: eligible}, true
}

// disqualify implements spec §4.6 step 4: a path-B-only miner loses
// eligibility if the most recent completed brief is younger than the
// configured disqualify window and the miner didn't submit to it. The
// window protects miners who joined after the brief began.
func disqualify(eligible, pathA, pathB map[ids.Hotkey]struct{}, in Inputs, cfg config.Config) {
	if !in.RecentCompletedBriefPresent {
		return
	}
	age := in.Now.Sub(in.RecentCompletedBrief.CreatedAt)
	if age >= cfg.RecentBriefDisqualifyWindow {
		return
	}

	for hotkey := range pathB {
		if _, inPathA := pathA[hotkey]; inPathA {
			continue
		}
		if _, active := in.Active[hotkey]; !active {
			continue
		}
		if _, submitted := in.RecentCompletedBriefSubmitters[hotkey]; submitted {
			continue
		}
		delete(eligible, hotkey)
	}
}

// threshold implements spec §4.6 step 2: the 75th percentile, clamped to
// 0 when the population is too small to exclude anyone meaningfully.
func threshold(values []float64, minPopulation int) float64 {
	if len(values) < minPopulation {
		return 0
	}
	return percentile75(values)
}

// percentile75 returns the element of a sorted copy of values at index
// floor(0.75·(n−1)), without interpolation.
func percentile75(values []float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	idx := int(0.75 * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func valuesFor(hotkeys []ids.Hotkey, m map[ids.Hotkey]float64) []float64 {
	out := make([]float64, len(hotkeys))
	for i, hotkey := range hotkeys {
		out[i] = m[hotkey]
	}
	return out
}

// toWeightVector implements spec §4.6 steps 5-6: normalize eligible
// scores to sum to cfg.MaxIntWeight, falling back to assigning
// cfg.MaxIntWeight to every eligible miner if the integer vector sums to
// zero despite a non-empty eligible set.
func toWeightVector(uidToHotkey map[ids.UID]ids.Hotkey, scores map[ids.Hotkey]float64, cfg config.Config) ([]ids.UID, []uint16) {
	uids := make([]ids.UID, 0, len(uidToHotkey))
	for uid := range uidToHotkey {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool { return uids[i] < uids[j] })

	var sum float64
	for _, hotkey := range uidToHotkey {
		sum += scores[hotkey]
	}

	weights := make([]uint16, len(uids))
	var intSum uint64
	for i, uid := range uids {
		hotkey := uidToHotkey[uid]
		score, eligible := scores[hotkey]
		if !eligible || sum <= 0 {
			continue
		}
		w := uint64(score / sum * float64(cfg.MaxIntWeight))
		if w > uint64(cfg.MaxIntWeight) {
			w = uint64(cfg.MaxIntWeight)
		}
		weights[i] = uint16(w)
		intSum += w
	}

	if intSum == 0 && len(scores) > 0 {
		for i, uid := range uids {
			if _, eligible := scores[uidToHotkey[uid]]; eligible {
				weights[i] = cfg.MaxIntWeight
			}
		}
	}

	return uids, weights
}
