// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metricclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/contentscore/validator/ids"
)

// TrackerClient calls the platform tracker service (spec §6.4).
type TrackerClient struct {
	baseURL string
	client  *http.Client
}

// NewTrackerClient returns a TrackerClient targeting baseURL.
func NewTrackerClient(baseURL string, client *http.Client) *TrackerClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &TrackerClient{baseURL: baseURL, client: client}
}

type trackerRequest struct {
	PlatformFamily   string `json:"platform_family"`
	ContentType      string `json:"content_type"`
	ContentID        string `json:"content_id"`
	IncludeDirectURL bool   `json:"include_direct_url"`
}

// FetchMetric calls POST /get_metrics for one submission's content id and
// normalizes the response into a Metric. A transport error or any status
// other than 200
// is returned as an error; the caller logs and skips this interval.
func (c *TrackerClient) FetchMetric(ctx context.Context, platform ids.Platform, contentID ids.ContentID) (Metric, error) {
	payload, err := json.Marshal(trackerRequest{
		PlatformFamily:   string(platform),
		ContentType:      string(platform),
		ContentID:        string(contentID),
		IncludeDirectURL: true,
	})
	if err != nil {
		return Metric{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/get_metrics", bytes.NewReader(payload))
	if err != nil {
		return Metric{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Metric{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Metric{}, err
	}
	if resp.StatusCode != http.StatusOK {
		return Metric{}, fmt.Errorf("metricclient: get_metrics for %s returned status %d", contentID, resp.StatusCode)
	}

	return fromTrackerResponse(platform, body)
}
