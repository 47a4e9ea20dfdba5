// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metricclient

import (
	"encoding/json"
	"fmt"

	"github.com/contentscore/validator/ids"
)

// rawTrackerResponse is deliberately loose: the platform tracker service
// reports a different field name for the same concept across platforms
// (view_count vs videoPlayCount vs viewCount, like_count vs likes, ...).
// Parsing into one struct with every alias, then picking the first
// non-zero alias per field in fromTrackerResponse, is the one place that
// knows about the per-platform naming; everything downstream sees a
// normalized Metric.
type rawTrackerResponse struct {
	Caption string `json:"caption"`
	Text    string `json:"text"`

	ViewCount       int64 `json:"view_count"`
	VideoPlayCount  int64 `json:"videoPlayCount"`
	ViewCountCamel  int64 `json:"viewCount"`

	LikeCount int64 `json:"like_count"`
	Likes     int64 `json:"likes"`

	CommentCount      int64 `json:"comment_count"`
	CommentsCountCamel int64 `json:"commentsCount"`

	OwnerFollowerCount *uint64 `json:"owner_follower_count"`
}

// fromTrackerResponse is the single per-variant constructor the design
// notes call for: it validates and normalizes one platform's response
// into a Metric, and is the only function in the package that knows the
// platform tracker's field-aliasing quirks.
func fromTrackerResponse(platform ids.Platform, body []byte) (Metric, error) {
	var raw rawTrackerResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return Metric{}, fmt.Errorf("metricclient: parse tracker response for %s: %w", platform, err)
	}

	m := Metric{
		PlatformTag:        platform,
		Caption:            firstNonEmpty(raw.Caption, raw.Text),
		ScalarCount:        firstNonZero(raw.ViewCount, raw.VideoPlayCount, raw.ViewCountCamel),
		LikeCount:          firstNonZero(raw.LikeCount, raw.Likes),
		CommentCount:       firstNonZero(raw.CommentCount, raw.CommentsCountCamel),
		OwnerFollowerCount: raw.OwnerFollowerCount,
	}
	return m, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(values ...int64) int64 {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}
