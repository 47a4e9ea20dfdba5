// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package chainadapter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contentscore/validator/chainadapter"
)

func TestParseCommitmentGist(t *testing.T) {
	c := chainadapter.ParseCommitment("alice:abcd")
	require.Equal(t, chainadapter.CommitmentGist, c.Kind)
	require.Equal(t, "alice", c.Username)
	require.Equal(t, "abcd", c.GistID)
}

func TestParseCommitmentBriefFirst(t *testing.T) {
	c := chainadapter.ParseCommitment("b1:sub_1:https://r2/x.mp4")
	require.Equal(t, chainadapter.CommitmentBrief, c.Kind)
	require.Equal(t, "b1", c.BriefID)
	require.Equal(t, chainadapter.BriefFirst, c.BriefKind)
	require.Equal(t, "https://r2/x.mp4", c.ArtifactURL)
}

func TestParseCommitmentBriefRevision(t *testing.T) {
	c := chainadapter.ParseCommitment("b1:sub_2:https://r2/y.mp4")
	require.Equal(t, chainadapter.CommitmentBrief, c.Kind)
	require.Equal(t, chainadapter.BriefRevision, c.BriefKind)
}

func TestParseCommitmentInvalidCases(t *testing.T) {
	cases := []string{
		"",
		"onlyonetoken",
		"a:b:c:d",
		"b1:not_a_kind:url",
		":abcd",
		"alice:",
	}
	for _, raw := range cases {
		c := chainadapter.ParseCommitment(raw)
		require.Equal(t, chainadapter.CommitmentInvalid, c.Kind, "raw=%q", raw)
	}
}
