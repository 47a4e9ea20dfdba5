// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import "github.com/cockroachdb/errors"

// ErrCorruptRecord marks a stored record that failed to decode; the store
// treats this as fatal rather than silently dropping data.
var ErrCorruptRecord = errors.New("store: corrupt record")

// ErrPerformanceNotFound is returned alongside a fresh, empty Performance
// by GetPerformance when the (hotkey, content_id) pair has no prior
// document — the first-observation case named in §4.4's lifecycle.
var ErrPerformanceNotFound = errors.New("store: performance not found")
