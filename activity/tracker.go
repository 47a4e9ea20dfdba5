// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package activity maintains LastValidObservation{Hotkey, ContentID, At}
// records so the 7-day active-miner window (spec §4.6) and the 48h
// brief-disqualification window (spec §4.6 step 4) are enforceable
// precisely, resolving the Open Question in spec.md §9: the distilled
// source lacks timestamps to enforce these windows exactly, so this
// tracker is the `[FULL]` supplement that makes them first-class.
//
// The tracker is not authoritative state recovered from the chain; it is
// a derived index the orchestrator updates every time the scorer
// confirms a valid observation. A hotkey with no entry here for any of its
// pairs (e.g. right after a fresh store, or predating the tracker's own
// installation) falls back to "has any persisted submission intersected with the
// current metagraph" per spec.md §9.
package activity

import (
	"sync"
	"time"

	"github.com/contentscore/validator/ids"
)

// Tracker records the most recent time each (hotkey, content_id) pair
// produced a valid (signature-checked, AI-authenticity-passing)
// observation.
type Tracker struct {
	mu   sync.RWMutex
	last map[ids.PerformanceKey]time.Time
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{last: make(map[ids.PerformanceKey]time.Time)}
}

// RecordValid updates the last-valid-observation time for key to at, if
// at is more recent than what's already recorded.
func (t *Tracker) RecordValid(key ids.PerformanceKey, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.last[key]; ok && existing.After(at) {
		return
	}
	t.last[key] = at
}

// LastValid returns the last recorded valid-observation time for key and
// whether one has ever been recorded.
func (t *Tracker) LastValid(key ids.PerformanceKey) (time.Time, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	at, ok := t.last[key]
	return at, ok
}

// ActiveWithinHotkey reports whether hotkey has at least one
// (hotkey, content_id) pair with a valid observation within window of
// now. hasPersisted is the fallback signal used when the tracker itself
// has no entry for this hotkey at all (spec.md §9 fallback mode).
func (t *Tracker) ActiveWithinHotkey(hotkey ids.Hotkey, now time.Time, window time.Duration, hasPersisted bool) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	found := false
	for key, at := range t.last {
		if key.Hotkey != hotkey {
			continue
		}
		found = true
		if now.Sub(at) <= window {
			return true
		}
	}
	if !found {
		return hasPersisted
	}
	return false
}
