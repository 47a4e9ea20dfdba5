// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metricclient

import (
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// aiScoreCache reuses a completed AI-detector result for the same video
// URL within a single reconcile iteration (several submissions can share
// a direct_video_url, e.g. a re-shared post). Calls for one URL that are in
// flight at the same moment are not merged: each misses and calls the
// detector. A ttl of 0 or less stores nothing. It is a short-TTL cache, not
// the authoritative once-per-lifetime gate — that gate is the submission's
// persisted checked_for_ai flag, owned by the performance store.
type aiScoreCache struct {
	cache *ristretto.Cache[string, float64]
	ttl   time.Duration
}

// newAIScoreCache returns a cache sized for a single cycle's worth of
// distinct video URLs.
func newAIScoreCache(ttl time.Duration) (*aiScoreCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config[string, float64]{
		NumCounters: 100_000,
		MaxCost:     10_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &aiScoreCache{cache: c, ttl: ttl}, nil
}

func (c *aiScoreCache) get(url string) (float64, bool) {
	return c.cache.Get(url)
}

func (c *aiScoreCache) set(url string, score float64) {
	if c.ttl <= 0 {
		return
	}
	c.cache.SetWithTTL(url, score, 1, c.ttl)
}

func (c *aiScoreCache) Close() {
	c.cache.Close()
}
