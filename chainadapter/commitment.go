// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package chainadapter

import "strings"

// CommitmentKind tags the variant a parsed Commitment belongs to.
type CommitmentKind int

const (
	// CommitmentInvalid is anything that doesn't match the gist or brief
	// grammar. An invalid commitment contributes no submissions this cycle.
	CommitmentInvalid CommitmentKind = iota
	CommitmentGist
	CommitmentBrief
)

// BriefKind distinguishes a brief commit's two allowed stages.
type BriefKind string

const (
	BriefFirst    BriefKind = "sub_1"
	BriefRevision BriefKind = "sub_2"
)

// Commitment is the parsed form of a peer's raw commitment string. Exactly
// one of the GistPointer/BriefCommit field groups is meaningful, selected
// by Kind.
type Commitment struct {
	Kind CommitmentKind

	// GistPointer fields, valid when Kind == CommitmentGist.
	Username string
	GistID   string

	// BriefCommit fields, valid when Kind == CommitmentBrief.
	BriefID     string
	BriefKind   BriefKind
	ArtifactURL string
}

// ParseCommitment classifies raw per the grammar in spec §6.1:
//
//	commit := gist | brief | empty
//	gist    := username ":" gist_id           ; exactly one ":"
//	brief   := brief_id ":" kind ":" url       ; exactly two ":"
//	kind    := "sub_1" | "sub_2"
//
// A string with any other number of colons, or a two-colon string whose
// middle token isn't a recognized BriefKind, parses as CommitmentInvalid.
func ParseCommitment(raw string) Commitment {
	parts := strings.Split(raw, ":")
	switch len(parts) {
	case 2:
		username, gistID := parts[0], parts[1]
		if username == "" || gistID == "" {
			return Commitment{Kind: CommitmentInvalid}
		}
		return Commitment{Kind: CommitmentGist, Username: username, GistID: gistID}
	case 3:
		briefID, kind, url := parts[0], BriefKind(parts[1]), parts[2]
		if briefID == "" || url == "" || (kind != BriefFirst && kind != BriefRevision) {
			return Commitment{Kind: CommitmentInvalid}
		}
		return Commitment{Kind: CommitmentBrief, BriefID: briefID, BriefKind: kind, ArtifactURL: url}
	default:
		return Commitment{Kind: CommitmentInvalid}
	}
}
