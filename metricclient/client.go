// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metricclient

import (
	"context"
	"time"

	liblog "github.com/luxfi/log"

	"github.com/contentscore/validator/ids"
)

// Target is the fetch_metric contract's input: a single (hotkey,
// content_id) observation to produce for the current interval.
type Target struct {
	Hotkey             ids.Hotkey
	ContentID          ids.ContentID
	Platform           ids.Platform
	DirectVideoURL     string
	AlreadyCheckedForAI bool
}

// Result is the fetch_metric contract's output.
type Result struct {
	Metric Metric

	// AICheckedNow is true when this call invoked the AI detector for the
	// first time for this (hotkey, content_id); the caller should flip
	// the submission's checked_for_ai flag in the store.
	AICheckedNow bool
}

// Client composes the platform tracker and AI detector behind the single
// fetch_metric(submission) contract named in spec §4.3. It is pure with
// respect to the store.
type Client struct {
	tracker  *TrackerClient
	detector *AIDetectorClient
	cache    *aiScoreCache
	log      liblog.Logger
}

// NewClient wires a Client. cacheTTL bounds how long a completed detector
// result is reused for later calls to the same URL within a cycle;
// passing 0 disables the reuse.
func NewClient(tracker *TrackerClient, detector *AIDetectorClient, cacheTTL time.Duration, logger liblog.Logger) (*Client, error) {
	cache, err := newAIScoreCache(cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Client{tracker: tracker, detector: detector, cache: cache, log: logger}, nil
}

// Close releases cache resources.
func (c *Client) Close() { c.cache.Close() }

// FetchMetric implements the fetch_metric(submission) contract. Errors
// from either sub-call are logged and surfaced as a nil *Result, skipping
// this interval for this content (spec §4.3): callers must treat a nil
// return as "no observation this cycle", not a fatal condition.
func (c *Client) FetchMetric(ctx context.Context, target Target) *Result {
	metric, err := c.tracker.FetchMetric(ctx, target.Platform, target.ContentID)
	if err != nil {
		c.log.Warn("platform tracker fetch failed", "hotkey", target.Hotkey, "content_id", target.ContentID, "err", err)
		return nil
	}

	aiCheckedNow := false
	if !target.AlreadyCheckedForAI && target.DirectVideoURL != "" {
		score, ok := c.cache.get(target.DirectVideoURL)
		if !ok {
			score, err = c.detector.Detect(ctx, target.DirectVideoURL)
			if err != nil {
				c.log.Warn("ai detector call failed", "hotkey", target.Hotkey, "content_id", target.ContentID, "err", err)
				return nil
			}
			c.cache.set(target.DirectVideoURL, score)
		}
		metric.AIScore = score
		aiCheckedNow = true
	}

	return &Result{Metric: metric, AICheckedNow: aiCheckedNow}
}
