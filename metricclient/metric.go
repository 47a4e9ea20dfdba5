// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metricclient fetches engagement metadata and AI-authenticity
// scores for a Submission from the two external HTTP services named in
// spec §4.3 and §6.4/§6.5. Clients are pure with respect to the
// performance store: they return values and never mutate persisted state.
package metricclient

import (
	"github.com/contentscore/validator/config"
	"github.com/contentscore/validator/ids"
)

// Metric is the outer sum type over every platform's engagement document
// (spec §3). Each platform's HTTP response has its own field names; a
// single typed constructor per platform (see platform.go) normalizes into
// this shape at the boundary instead of the rest of the codebase doing
// ad-hoc field access.
type Metric struct {
	PlatformTag         ids.Platform
	Caption             string
	ScalarCount         int64 // view_count or play_count, whichever the platform reports
	LikeCount           int64
	CommentCount        int64
	OwnerFollowerCount  *uint64
	AIScore             float64
}

// ToScalar returns the non-negative observable quantity the EMA scorer
// feeds on (views or plays, depending on platform).
func (m Metric) ToScalar() int64 {
	if m.ScalarCount < 0 {
		return 0
	}
	return m.ScalarCount
}

// CheckSignature reports whether the configured per-hotkey signature
// token appears (case-insensitively) in the caption.
func (m Metric) CheckSignature(hotkey ids.Hotkey, cfg config.Config) bool {
	return cfg.CheckSignature(hotkey, m.Caption)
}
