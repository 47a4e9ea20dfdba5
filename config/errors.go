// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrNetuidRequired       = errors.New("config: netuid is required")
	ErrStoreURIRequired     = errors.New("config: store_uri is required")
	ErrTrackerURLRequired   = errors.New("config: service_platform_tracker_url is required")
	ErrDetectorURLRequired  = errors.New("config: service_ai_detector_url is required")
	ErrNoAllowedPlatforms   = errors.New("config: allowed_platforms must not be empty")
	ErrInvalidAIThreshold   = errors.New("config: ai_generated_score_threshold must be in [0,1]")
	ErrInvalidEMAAlpha      = errors.New("config: ema_alpha must be in (0,1]")
	ErrInvalidMaxIntWeight  = errors.New("config: max_int_weight must be >= 1")
	ErrInvalidReconcilePer  = errors.New("config: submission_update_interval must be >= 1s")
	ErrInvalidPublishPeriod = errors.New("config: set_weights_interval must be >= 1s")
	ErrInvalidFanoutWidth   = errors.New("config: concurrency gate widths must be >= 1")
)
