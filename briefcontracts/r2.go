// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package briefcontracts

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const (
	minArtifactBytes = 100 * 1024
	maxArtifactBytes = 500 * 1024 * 1024
)

// R2Validator validates a BriefCommit's artifact_url before any submission
// is persisted (spec §6.3, §12): content-type must start with "video/" and
// size must fall in [100KB, 500MB]. The real object-store client is an
// out-of-scope collaborator; this package only shapes the call.
type R2Validator interface {
	Validate(ctx context.Context, url string) (bool, error)
}

// HTTPR2Validator validates via a HEAD request, per the original source's
// validation shape (spec §12): a HEAD probe avoids downloading the video
// just to check its content-type and size.
type HTTPR2Validator struct {
	client *http.Client
}

// NewHTTPR2Validator returns a validator using client, or http.DefaultClient
// if nil.
func NewHTTPR2Validator(client *http.Client) *HTTPR2Validator {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPR2Validator{client: client}
}

// Validate implements R2Validator.
func (v *HTTPR2Validator) Validate(ctx context.Context, url string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false, err
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("briefcontracts: r2 head %s returned status %d", url, resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		return false, nil
	}

	size := resp.ContentLength
	if size < minArtifactBytes || size > maxArtifactBytes {
		return false, nil
	}
	return true, nil
}
