// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package weight_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/contentscore/validator/briefcontracts"
	"github.com/contentscore/validator/config"
	"github.com/contentscore/validator/ids"
	"github.com/contentscore/validator/weight"
)

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.MinPopulationForPercentile = 4
	cfg.MaxIntWeight = 1000
	return cfg
}

func TestDistributeSkipsCycleWhenActiveSetEmpty(t *testing.T) {
	_, ok := weight.Distribute(weight.Inputs{}, testConfig())
	require.False(t, ok)
}

func TestDistributeAssignsMaxWeightToSoleEligibleMiner(t *testing.T) {
	cfg := testConfig()
	in := weight.Inputs{
		Active:     map[ids.Hotkey]struct{}{"h1": {}},
		Engagement: map[ids.Hotkey]float64{"h1": 5},
		Brief:      map[ids.Hotkey]float64{},
		UIDs:       map[ids.UID]ids.Hotkey{1: "h1"},
		Now:        time.Now(),
	}

	result, ok := weight.Distribute(in, cfg)
	require.True(t, ok)
	require.Contains(t, result.Eligible, ids.Hotkey("h1"))
	require.Equal(t, []ids.UID{1}, result.UIDs)
	require.Equal(t, cfg.MaxIntWeight, result.Weights[0])
}

func TestDistributeSplitsWeightProportionallyAcrossEligibleMiners(t *testing.T) {
	cfg := testConfig()
	in := weight.Inputs{
		Active: map[ids.Hotkey]struct{}{"h1": {}, "h2": {}},
		Engagement: map[ids.Hotkey]float64{
			"h1": 10,
			"h2": 30,
		},
		Brief: map[ids.Hotkey]float64{},
		UIDs:  map[ids.UID]ids.Hotkey{1: "h1", 2: "h2"},
		Now:   time.Now(),
	}

	result, ok := weight.Distribute(in, cfg)
	require.True(t, ok)
	require.Len(t, result.Eligible, 2)

	var total uint16
	for _, w := range result.Weights {
		total += w
	}
	require.InDelta(t, float64(cfg.MaxIntWeight), float64(total), 2)

	// h2's engagement score is 3x h1's, so its weight should roughly
	// reflect that ratio.
	idxH1, idxH2 := -1, -1
	for i, uid := range result.UIDs {
		if uid == 1 {
			idxH1 = i
		}
		if uid == 2 {
			idxH2 = i
		}
	}
	require.Greater(t, result.Weights[idxH2], result.Weights[idxH1])
}

func TestDistributeExcludesMinersBelowPercentileThreshold(t *testing.T) {
	cfg := testConfig()
	active := map[ids.Hotkey]struct{}{}
	engagement := map[ids.Hotkey]float64{}
	uids := map[ids.UID]ids.Hotkey{}
	for i, score := range []float64{1, 2, 3, 4, 100} {
		hotkey := ids.Hotkey(string(rune('a' + i)))
		active[hotkey] = struct{}{}
		engagement[hotkey] = score
		uids[ids.UID(i+1)] = hotkey
	}

	in := weight.Inputs{Active: active, Engagement: engagement, Brief: map[ids.Hotkey]float64{}, UIDs: uids, Now: time.Now()}
	result, ok := weight.Distribute(in, cfg)
	require.True(t, ok)

	// Nearest-rank 75th percentile over a population of 5 clears the top
	// two miners only; the bottom three fall below it.
	require.Len(t, result.Eligible, 2)
	require.Contains(t, result.Eligible, ids.Hotkey("e"))
	require.NotContains(t, result.Eligible, ids.Hotkey("a"))
}

func TestDistributeDisqualifiesEngagementOnlyMinerMissingRecentBrief(t *testing.T) {
	cfg := testConfig()
	now := time.Now()

	active := map[ids.Hotkey]struct{}{}
	engagement := map[ids.Hotkey]float64{}
	uids := map[ids.UID]ids.Hotkey{}
	for i, score := range []float64{1, 2, 3, 100} {
		hotkey := ids.Hotkey(string(rune('a' + i)))
		active[hotkey] = struct{}{}
		engagement[hotkey] = score
		uids[ids.UID(i+1)] = hotkey
	}
	topHotkey := ids.Hotkey("d")

	in := weight.Inputs{
		Active:                         active,
		Engagement:                     engagement,
		Brief:                          map[ids.Hotkey]float64{},
		UIDs:                           uids,
		Now:                            now,
		RecentCompletedBriefPresent:    true,
		RecentCompletedBrief:           briefcontracts.Brief{BriefID: "b1", CreatedAt: now.Add(-time.Hour)},
		RecentCompletedBriefSubmitters: map[ids.Hotkey]struct{}{},
	}

	result, ok := weight.Distribute(in, cfg)
	require.True(t, ok)
	require.NotContains(t, result.Eligible, topHotkey)
}

func TestDistributeDoesNotDisqualifyMinerWhoSubmittedToRecentBrief(t *testing.T) {
	cfg := testConfig()
	now := time.Now()

	active := map[ids.Hotkey]struct{}{}
	engagement := map[ids.Hotkey]float64{}
	uids := map[ids.UID]ids.Hotkey{}
	for i, score := range []float64{1, 2, 3, 100} {
		hotkey := ids.Hotkey(string(rune('a' + i)))
		active[hotkey] = struct{}{}
		engagement[hotkey] = score
		uids[ids.UID(i+1)] = hotkey
	}
	topHotkey := ids.Hotkey("d")

	in := weight.Inputs{
		Active:                      active,
		Engagement:                  engagement,
		Brief:                       map[ids.Hotkey]float64{},
		UIDs:                        uids,
		Now:                         now,
		RecentCompletedBriefPresent: true,
		RecentCompletedBrief:        briefcontracts.Brief{BriefID: "b1", CreatedAt: now.Add(-time.Hour)},
		RecentCompletedBriefSubmitters: map[ids.Hotkey]struct{}{
			topHotkey: {},
		},
	}

	result, ok := weight.Distribute(in, cfg)
	require.True(t, ok)
	require.Contains(t, result.Eligible, topHotkey)
}

func TestDistributeFallsBackToMaxWeightWhenScoresSumToZero(t *testing.T) {
	cfg := testConfig()
	cfg.MinPopulationForPercentile = 0

	in := weight.Inputs{
		Active:     map[ids.Hotkey]struct{}{"h1": {}, "h2": {}},
		Engagement: map[ids.Hotkey]float64{"h1": 0, "h2": 0},
		Brief:      map[ids.Hotkey]float64{"h1": 0, "h2": 0},
		UIDs:       map[ids.UID]ids.Hotkey{1: "h1", 2: "h2"},
		Now:        time.Now(),
	}

	result, ok := weight.Distribute(in, cfg)
	require.True(t, ok)
	for _, w := range result.Weights {
		require.Equal(t, cfg.MaxIntWeight, w)
	}
}
