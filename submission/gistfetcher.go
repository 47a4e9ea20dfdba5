// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GistFetcher retrieves the raw newline-delimited JSON content of a gist.
// Implementations own their own transport timeout; callers additionally
// bound the call with the configured GistFetchTimeout (spec: 15s).
type GistFetcher interface {
	FetchGist(ctx context.Context, username, gistID string) (string, error)
}

// HTTPGistFetcher fetches gist content over plain HTTP(S) from a
// configurable host, templated as "<baseURL>/<username>/<gistID>/raw".
type HTTPGistFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGistFetcher returns a fetcher rooted at baseURL (e.g.
// "https://gist.githubusercontent.com").
func NewHTTPGistFetcher(baseURL string, client *http.Client) *HTTPGistFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPGistFetcher{baseURL: baseURL, client: client}
}

// FetchGist implements GistFetcher.
func (f *HTTPGistFetcher) FetchGist(ctx context.Context, username, gistID string) (string, error) {
	url := fmt.Sprintf("%s/%s/%s/raw", f.baseURL, username, gistID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("submission: gist fetch %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// withTimeout bounds ctx to the gist fetch timeout named in the spec,
// regardless of what the caller's own context deadline is.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
