// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config defines the validator's immutable runtime configuration.
// A Config is built once at startup by Load and never re-read from the
// environment afterward — every component receives the same value.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/contentscore/validator/ids"
)

// Config holds every tunable named in the specification's configuration
// section. Zero value is not valid; use Defaults() or Load() to obtain one,
// then Verify() before use.
type Config struct {
	// Netuid is the chain subnet id this validator serves.
	Netuid uint16 `json:"netuid"`

	// SubmissionUpdateInterval is the reconcile loop period.
	SubmissionUpdateInterval time.Duration `json:"submission_update_interval"`

	// SetWeightsInterval is the publish loop period.
	SetWeightsInterval time.Duration `json:"set_weights_interval"`

	// MaxIntWeight is the chain's fixed-point integer ceiling for weights.
	MaxIntWeight uint16 `json:"max_int_weight"`

	// VersionKey is bumped to invalidate previously-published weights under
	// a scoring change.
	VersionKey uint32 `json:"version_key"`

	// AllowedPlatforms is the submission platform allow-list.
	AllowedPlatforms []ids.Platform `json:"allowed_platforms"`

	// AIGeneratedScoreThreshold (theta_ai) is the minimum ai_score for a
	// metric observation to count toward any score.
	AIGeneratedScoreThreshold float64 `json:"ai_generated_score_threshold"`

	// EMAAlpha is the EMA smoothing factor.
	EMAAlpha float64 `json:"ema_alpha"`

	// MaxSubmissionsPerHotkey caps per-iteration fan-out per peer.
	MaxSubmissionsPerHotkey int `json:"max_submissions_per_hotkey"`

	// PeerFanout and MetricFanout are the two process-wide concurrency
	// gate widths (spec: 32 for peer resolution, 4 for metric fetches).
	PeerFanout   int `json:"peer_fanout"`
	MetricFanout int `json:"metric_fanout"`

	// ServicePlatformTrackerURL and ServiceAIDetectorURL are the base URLs
	// of the two external metric services.
	ServicePlatformTrackerURL string `json:"service_platform_tracker_url"`
	ServiceAIDetectorURL      string `json:"service_ai_detector_url"`

	// ChainRPCURL is the base URL of the chain RPC adapter's transport.
	ChainRPCURL string `json:"chain_rpc_url"`

	// StoreURI addresses the performance store's backing engine. The
	// in-process default engine accepts any value (including empty);
	// a real embedded engine would interpret it as a path or DSN.
	StoreURI string `json:"store_uri"`

	// SignatureProjectTag is the project identifier embedded in the
	// per-hotkey signature token (see SignatureTemplate).
	SignatureProjectTag string `json:"signature_project_tag"`

	// LogFile, when non-empty, also rotates logs to disk via lumberjack;
	// logs still go to stderr.
	LogFile string `json:"log_file"`

	// HTTPAddr is the bind address for the /healthz, /metrics, and
	// validator.Status observability surface.
	HTTPAddr string `json:"http_addr"`

	// ActiveWindow is the recency window for "active miner" eligibility
	// (spec default 7 days).
	ActiveWindow time.Duration `json:"active_window"`

	// RecentBriefDisqualifyWindow is the age below which a just-completed
	// brief can disqualify non-participating engagement-path miners
	// (spec default 48h).
	RecentBriefDisqualifyWindow time.Duration `json:"recent_brief_disqualify_window"`

	// BriefScoreWindow bounds how recently a brief must have been created
	// for its submissions to count toward brief score (spec: 24h).
	BriefScoreWindow time.Duration `json:"brief_score_window"`

	// MinPopulationForPercentile is the population size below which a
	// percentile threshold clamps to zero instead of excluding everyone
	// (spec: 4).
	MinPopulationForPercentile int `json:"min_population_for_percentile"`

	// GistFetchTimeout, PlatformTrackerTimeout, AIDetectorTimeout are the
	// three fixed per-call timeouts named in the spec.
	GistFetchTimeout       time.Duration `json:"gist_fetch_timeout"`
	PlatformTrackerTimeout time.Duration `json:"platform_tracker_timeout"`
	AIDetectorTimeout      time.Duration `json:"ai_detector_timeout"`
}

// Defaults returns a Config populated with every default named in the
// specification's configuration section (§6.7).
func Defaults() Config {
	return Config{
		SubmissionUpdateInterval:   6 * time.Hour,
		SetWeightsInterval:         10 * time.Minute,
		MaxIntWeight:               65535,
		AllowedPlatforms:           []ids.Platform{"yt/video", "ig/reel", "ig/post"},
		AIGeneratedScoreThreshold:  0.30,
		EMAAlpha:                   0.95,
		MaxSubmissionsPerHotkey:    256,
		PeerFanout:                 32,
		MetricFanout:               4,
		SignatureProjectTag:        "contentscore",
		HTTPAddr:                   ":9650",
		ActiveWindow:               7 * 24 * time.Hour,
		RecentBriefDisqualifyWindow: 48 * time.Hour,
		BriefScoreWindow:           24 * time.Hour,
		MinPopulationForPercentile: 4,
		GistFetchTimeout:           15 * time.Second,
		PlatformTrackerTimeout:     64 * time.Second,
		AIDetectorTimeout:          192 * time.Second,
	}
}

// Verify validates c, returning the first violated invariant as a sentinel
// error from this package. The AI-threshold and EMA-alpha range errors are
// wrapped with the offending value via fmt.Errorf %w so errors.Is still
// matches; the others are returned as the bare sentinel.
func (c Config) Verify() error {
	if c.Netuid == 0 {
		return ErrNetuidRequired
	}
	if c.StoreURI == "" {
		return ErrStoreURIRequired
	}
	if c.ServicePlatformTrackerURL == "" {
		return ErrTrackerURLRequired
	}
	if c.ServiceAIDetectorURL == "" {
		return ErrDetectorURLRequired
	}
	if len(c.AllowedPlatforms) == 0 {
		return ErrNoAllowedPlatforms
	}
	if c.AIGeneratedScoreThreshold < 0 || c.AIGeneratedScoreThreshold > 1 {
		return fmt.Errorf("%w: got %f", ErrInvalidAIThreshold, c.AIGeneratedScoreThreshold)
	}
	if c.EMAAlpha <= 0 || c.EMAAlpha > 1 {
		return fmt.Errorf("%w: got %f", ErrInvalidEMAAlpha, c.EMAAlpha)
	}
	if c.MaxIntWeight == 0 {
		return ErrInvalidMaxIntWeight
	}
	if c.SubmissionUpdateInterval < time.Second {
		return ErrInvalidReconcilePer
	}
	if c.SetWeightsInterval < time.Second {
		return ErrInvalidPublishPeriod
	}
	if c.PeerFanout < 1 || c.MetricFanout < 1 {
		return ErrInvalidFanoutWidth
	}
	return nil
}

// AllowsPlatform reports whether p is in the configured allow-list.
func (c Config) AllowsPlatform(p ids.Platform) bool {
	for _, allowed := range c.AllowedPlatforms {
		if allowed == p {
			return true
		}
	}
	return false
}

// SignatureTemplate returns the case-insensitive token expected in a post's
// caption for the given hotkey: "@", the configured project tag, a space,
// and the last 5 characters of the hotkey, e.g. "@contentscore abcde".
func (c Config) SignatureTemplate(hotkey ids.Hotkey) string {
	h := string(hotkey)
	suffix := h
	if len(h) > 5 {
		suffix = h[len(h)-5:]
	}
	return fmt.Sprintf("@%s %s", c.SignatureProjectTag, suffix)
}

// CheckSignature reports whether caption contains the signature token for
// hotkey, case-insensitively.
func (c Config) CheckSignature(hotkey ids.Hotkey, caption string) bool {
	token := strings.ToLower(c.SignatureTemplate(hotkey))
	return strings.Contains(strings.ToLower(caption), token)
}
