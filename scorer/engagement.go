// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package scorer

import (
	"github.com/contentscore/validator/config"
	"github.com/contentscore/validator/ids"
	"github.com/contentscore/validator/store"
)

// EngagementRate implements spec §4.5.2: for every active hotkey, only the
// most recent interval of each Performance is considered. A Performance
// contributes only if its most recent metric passes the signature and
// AI-authenticity gates.
func EngagementRate(activeHotkeys []ids.Hotkey, performances map[ids.Hotkey][]store.Performance, cfg config.Config) map[ids.Hotkey]float64 {
	out := make(map[ids.Hotkey]float64, len(activeHotkeys))

	for _, hotkey := range activeHotkeys {
		var likes, comments int64
		var validPosts int
		var followerCount uint64
		var followerCountAt ids.IntervalKey

		for _, p := range performances[hotkey] {
			intervals := p.SortedIntervals()
			if len(intervals) == 0 {
				continue
			}
			latestKey := intervals[len(intervals)-1]
			latest := p.Series[latestKey]
			if !ValidObservation(latest, hotkey, cfg) {
				continue
			}

			likes += latest.LikeCount
			comments += latest.CommentCount
			validPosts++
			if latest.OwnerFollowerCount != nil && *latest.OwnerFollowerCount > 0 {
				if followerCountAt == "" || followerCountAt.Before(latestKey) {
					followerCount = *latest.OwnerFollowerCount
					followerCountAt = latestKey
				}
			}
		}

		if validPosts == 0 || followerCount == 0 {
			out[hotkey] = 0
			continue
		}
		out[hotkey] = float64(likes+comments) / float64(validPosts) / float64(followerCount) * 100
	}

	return out
}
