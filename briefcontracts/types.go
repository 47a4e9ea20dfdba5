// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package briefcontracts defines the read-only contracts the validator
// shares with the out-of-scope brief-authoring system (spec §3, §6.3):
// the brief database, the R2 video validator, and the email notifier.
// The validator never drives the brief round itself; it only consumes
// the resulting state for scoring and eligibility.
package briefcontracts

import (
	"time"

	"github.com/contentscore/validator/ids"
)

// ValidationState is the outcome of validating a BriefSubmission's
// artifact, whether by R2 content-type/size check or human review.
type ValidationState int

const (
	ValidationPending ValidationState = iota
	ValidationValid
	ValidationInvalid
)

// Brief is the contract-only shape of a brief round: a deadline pair and
// the terminal miner sets produced by the (out-of-scope) human-selection
// workflow.
type Brief struct {
	BriefID        string
	CreatedAt      time.Time
	DeadlineInitial time.Time
	DeadlineFinal   time.Time
	TopSelected     map[ids.Hotkey]struct{}
	FinalSelected   map[ids.Hotkey]struct{}
}

// InTopSelected reports whether hotkey is in the brief's top_selected set.
func (b Brief) InTopSelected(hotkey ids.Hotkey) bool {
	_, ok := b.TopSelected[hotkey]
	return ok
}

// InFinalSelected reports whether hotkey is in the brief's final_selected set.
func (b Brief) InFinalSelected(hotkey ids.Hotkey) bool {
	_, ok := b.FinalSelected[hotkey]
	return ok
}

// BriefSubmission is one miner's artifact submitted against a Brief.
// Quality is the optional [0,1] multiplier the brief pipeline may attach;
// the zero value is treated as "absent" and defaulted to 1 by the scorer
// (spec §12, brief quality multiplier plumbing).
type BriefSubmission struct {
	BriefID      string
	MinerHotkey  ids.Hotkey
	Kind         BriefSubmissionKind
	ArtifactURL  string
	SubmittedAt  time.Time
	Validation   ValidationState
	Quality      *float64
}

// QualityOrDefault returns Quality if present, else the spec's default of 1.
func (s BriefSubmission) QualityOrDefault() float64 {
	if s.Quality == nil {
		return 1
	}
	return *s.Quality
}

// BriefSubmissionKind mirrors chainadapter.BriefKind without importing
// that package (briefcontracts is consumed by chainadapter's caller, not
// the other way around).
type BriefSubmissionKind string

const (
	BriefSubmissionFirst    BriefSubmissionKind = "sub_1"
	BriefSubmissionRevision BriefSubmissionKind = "sub_2"
)
