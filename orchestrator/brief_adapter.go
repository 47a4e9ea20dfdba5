// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package orchestrator

import (
	"context"

	"github.com/contentscore/validator/briefcontracts"
	"github.com/contentscore/validator/chainadapter"
	"github.com/contentscore/validator/ids"
)

// briefHandlerAdapter satisfies submission.BriefHandler by translating a
// chainadapter.Commitment into briefcontracts.Handler's own Commitment
// shape. It exists so neither chainadapter nor briefcontracts needs to
// import the other; this package is the one wiring point that knows both.
type briefHandlerAdapter struct {
	handler *briefcontracts.Handler
}

// NewBriefHandlerAdapter wraps handler as a submission.BriefHandler, for
// use by cmd/validator's wiring.
func NewBriefHandlerAdapter(handler *briefcontracts.Handler) *briefHandlerAdapter {
	return &briefHandlerAdapter{handler: handler}
}

func (a *briefHandlerAdapter) HandleBriefCommit(ctx context.Context, hotkey ids.Hotkey, commit chainadapter.Commitment) error {
	return a.handler.HandleBriefCommit(ctx, hotkey, briefcontracts.Commitment{
		BriefID:     commit.BriefID,
		Kind:        briefcontracts.BriefSubmissionKind(commit.BriefKind),
		ArtifactURL: commit.ArtifactURL,
	})
}
