// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package submission turns a peer's raw commitment string into the set of
// Submissions the rest of the pipeline scores. A gist commitment is fetched
// and parsed into zero or more Submissions; a brief commitment is handed
// off to the brief-submission collaborator and contributes nothing to the
// generic submission set (spec §4.2).
package submission

import "github.com/contentscore/validator/ids"

// Submission is one piece of content a miner has asked the validator to
// track. Uniqueness within a peer's set is (Platform, ContentID); a peer's
// full set is replaced wholesale on every resolve, never merged.
type Submission struct {
	ContentID      ids.ContentID
	Platform       ids.Platform
	DirectVideoURL string
	CheckedForAI   bool
}

// Key returns the uniqueness key used for deduplication and store lookups.
func (s Submission) Key() ids.SubmissionKey {
	return ids.SubmissionKey{Platform: s.Platform, ContentID: s.ContentID}
}

// Outcome is the result of resolving one peer's commitment for one cycle.
type Outcome struct {
	// Kind classifies which branch of §4.2 produced this outcome.
	Kind OutcomeKind

	// Submissions is populated only when Kind == OutcomeGist and the
	// resolve succeeded; it is the deduplicated, allow-listed submission
	// list in first-occurrence order.
	Submissions []Submission

	// Succeeded distinguishes a deterministic empty result (an Invalid
	// commitment, or a gist that legitimately contains zero allow-listed
	// submissions) from a transport/parse failure. Callers must not
	// purge prior persisted state when Succeeded is false.
	Succeeded bool
}

// OutcomeKind tags which §4.2 branch ran.
type OutcomeKind int

const (
	OutcomeInvalid OutcomeKind = iota
	OutcomeGist
	OutcomeBrief
)

// ReplacesStore reports whether this outcome should drive a call to the
// performance store's replace_peer_submissions (spec §4.4): true only for
// a successful gist resolve, including one that legitimately yields zero
// submissions (§4.4's delete-on-empty rule applies to that case). False
// for the brief branch (which never touches the generic submission set),
// false for a failed gist resolve (prior state is left intact), and false
// for an Invalid commitment — it never attempted a resolve at all, so
// spec §4.2 requires prior persisted submissions to survive untouched.
func (o Outcome) ReplacesStore() bool {
	return o.Kind == OutcomeGist && o.Succeeded
}
