// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metricclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// AIDetectorClient calls the AI-authenticity detection service (spec
// §6.5). Called at most once per (hotkey, content_id) lifetime by the
// caller's own bookkeeping (the submission's checked_for_ai flag); this
// client itself is stateless.
type AIDetectorClient struct {
	baseURL   string
	numFrames int
	client    *http.Client
}

// NewAIDetectorClient returns a client sampling numFrames frames per
// video; numFrames <= 0 uses the service's own default.
func NewAIDetectorClient(baseURL string, numFrames int, client *http.Client) *AIDetectorClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &AIDetectorClient{baseURL: baseURL, numFrames: numFrames, client: client}
}

type detectResponse struct {
	MeanAIGenerated float64   `json:"mean_ai_generated"`
	PerFrame        []float64 `json:"per_frame"`
}

// Detect returns ai_score ∈ [0,1] for the video at videoURL.
func (c *AIDetectorClient) Detect(ctx context.Context, videoURL string) (float64, error) {
	q := url.Values{}
	q.Set("url", videoURL)
	if c.numFrames > 0 {
		q.Set("num_frames", fmt.Sprintf("%d", c.numFrames))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/detect?"+q.Encode(), nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("metricclient: detect for %s returned status %d", videoURL, resp.StatusCode)
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	if out.MeanAIGenerated < 0 {
		return 0, nil
	}
	if out.MeanAIGenerated > 1 {
		return 1, nil
	}
	return out.MeanAIGenerated, nil
}
