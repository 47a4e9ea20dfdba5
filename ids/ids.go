// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ids defines the opaque identity value types shared across the
// validator. Hotkeys and content ids belong to an external chain's and
// platform's own addressing schemes respectively; they are treated as
// opaque strings rather than fixed-size binary ids.
package ids

import (
	"fmt"
	"time"
)

// Hotkey is a miner's on-chain address, opaque to this validator.
type Hotkey string

// UID is a peer's slot index within the current metagraph.
type UID uint16

// Platform names a supported content platform. The allow-list of valid
// values is configuration, not a closed Go enum, so new platforms can be
// added without a code change.
type Platform string

// ContentID identifies a single piece of content on a Platform. Uniqueness
// within a peer's submission set is the pair (Platform, ContentID).
type ContentID string

// IntervalKey is the UTC wall-clock minute bucket an observation belongs
// to, in "YYYY-MM-DD-HH-MM" form. It is lexicographically sortable and
// equal to chronological order, and is always constructed from a single
// capture point (the start of a reconcile iteration) rather than read
// ad hoc from time.Now() at each call site.
type IntervalKey string

// NewIntervalKey truncates t to the minute and renders it as the canonical
// UTC interval key.
func NewIntervalKey(t time.Time) IntervalKey {
	u := t.UTC()
	return IntervalKey(fmt.Sprintf("%04d-%02d-%02d-%02d-%02d",
		u.Year(), u.Month(), u.Day(), u.Hour(), u.Minute()))
}

// Before reports whether k chronologically precedes other. Interval keys
// are plain strings so this is a lexicographic comparison, which the
// format guarantees is equivalent to time ordering.
func (k IntervalKey) Before(other IntervalKey) bool {
	return k < other
}

// String implements fmt.Stringer.
func (k IntervalKey) String() string { return string(k) }

// SubmissionKey is the uniqueness key for a Submission within a peer:
// (Platform, ContentID).
type SubmissionKey struct {
	Platform  Platform
	ContentID ContentID
}

// PerformanceKey is the identity key of a Performance document:
// (Hotkey, ContentID).
type PerformanceKey struct {
	Hotkey    Hotkey
	ContentID ContentID
}

func (k PerformanceKey) String() string {
	return fmt.Sprintf("%s/%s", k.Hotkey, k.ContentID)
}
