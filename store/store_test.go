// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package store_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contentscore/validator/ids"
	"github.com/contentscore/validator/metricclient"
	"github.com/contentscore/validator/store"
	"github.com/contentscore/validator/submission"
)

func TestReplacePeerSubmissionsRoundTrips(t *testing.T) {
	s := store.New(store.NewMemDatabase())
	subs := []submission.Submission{
		{ContentID: "v1", Platform: "yt/video"},
		{ContentID: "v2", Platform: "yt/video"},
	}
	require.NoError(t, s.ReplacePeerSubmissions("h1", subs))

	touching, err := s.LoadSubmissionsTouching(map[ids.ContentID]struct{}{"v1": {}})
	require.NoError(t, err)
	require.Len(t, touching["h1"], 1)
	require.Equal(t, ids.ContentID("v1"), touching["h1"][0].ContentID)
}

func TestReplacePeerSubmissionsWithEmptySliceDeletesRecord(t *testing.T) {
	s := store.New(store.NewMemDatabase())
	require.NoError(t, s.ReplacePeerSubmissions("h1", []submission.Submission{{ContentID: "v1", Platform: "yt/video"}}))
	require.NoError(t, s.ReplacePeerSubmissions("h1", nil))

	touching, err := s.LoadSubmissionsTouching(map[ids.ContentID]struct{}{"v1": {}})
	require.NoError(t, err)
	require.Empty(t, touching)
}

func TestLoadSubmissionsTouchingExcludesNonIntersectingPeers(t *testing.T) {
	s := store.New(store.NewMemDatabase())
	require.NoError(t, s.ReplacePeerSubmissions("h1", []submission.Submission{{ContentID: "v1", Platform: "yt/video"}}))
	require.NoError(t, s.ReplacePeerSubmissions("h2", []submission.Submission{{ContentID: "v2", Platform: "yt/video"}}))

	touching, err := s.LoadSubmissionsTouching(map[ids.ContentID]struct{}{"v1": {}})
	require.NoError(t, err)
	require.Contains(t, touching, ids.Hotkey("h1"))
	require.NotContains(t, touching, ids.Hotkey("h2"))
}

func TestGetPerformanceReturnsNotFoundWithFreshDocument(t *testing.T) {
	s := store.New(store.NewMemDatabase())
	key := ids.PerformanceKey{Hotkey: "h1", ContentID: "v1"}

	p, err := s.GetPerformance(key)
	require.ErrorIs(t, err, store.ErrPerformanceNotFound)
	require.Equal(t, ids.Hotkey("h1"), p.Hotkey)
	require.Equal(t, ids.ContentID("v1"), p.ContentID)
	require.NotNil(t, p.Series)
	require.Empty(t, p.Series)
}

func TestUpsertPerformanceThenGetReturnsStoredSeries(t *testing.T) {
	s := store.New(store.NewMemDatabase())
	key := ids.PerformanceKey{Hotkey: "h1", ContentID: "v1"}

	p, err := s.GetPerformance(key)
	require.ErrorIs(t, err, store.ErrPerformanceNotFound)
	p.Series["2026-01-01-00-00"] = metricclient.Metric{ScalarCount: 100}
	require.NoError(t, s.UpsertPerformance(p))

	got, err := s.GetPerformance(key)
	require.NoError(t, err)
	require.Len(t, got.Series, 1)
	require.EqualValues(t, 100, got.Series["2026-01-01-00-00"].ScalarCount)
}

func TestIterPerformancesVisitsEveryDocument(t *testing.T) {
	s := store.New(store.NewMemDatabase())
	require.NoError(t, s.UpsertPerformance(store.Performance{
		Hotkey: "h1", ContentID: "v1",
		Series: map[ids.IntervalKey]metricclient.Metric{"2026-01-01-00-00": {}},
	}))
	require.NoError(t, s.UpsertPerformance(store.Performance{
		Hotkey: "h2", ContentID: "v2",
		Series: map[ids.IntervalKey]metricclient.Metric{"2026-01-01-00-00": {}},
	}))

	var hotkeys []ids.Hotkey
	require.NoError(t, s.IterPerformances(func(p store.Performance) error {
		hotkeys = append(hotkeys, p.Hotkey)
		return nil
	}))
	require.ElementsMatch(t, []ids.Hotkey{"h1", "h2"}, hotkeys)
}
