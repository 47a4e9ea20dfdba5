// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package briefcontracts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/contentscore/validator/briefcontracts"
	"github.com/contentscore/validator/ids"
	vlog "github.com/contentscore/validator/log"
)

type fakeR2Validator struct {
	valid bool
	err   error
}

func (f fakeR2Validator) Validate(context.Context, string) (bool, error) { return f.valid, f.err }

func TestHandleBriefCommitRecordsValidSubmission(t *testing.T) {
	db := briefcontracts.NewMemoryBriefDB()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db.PutBrief(briefcontracts.Brief{BriefID: "b1", CreatedAt: now, DeadlineFinal: now.Add(24 * time.Hour)})

	h := briefcontracts.NewHandler(db, fakeR2Validator{valid: true}, briefcontracts.NewLoggingEmailNotifier(vlog.Discard()), vlog.Discard(), func() time.Time { return now.Add(time.Hour) })

	err := h.HandleBriefCommit(context.Background(), "h1", briefcontracts.Commitment{
		BriefID: "b1", Kind: briefcontracts.BriefSubmissionFirst, ArtifactURL: "https://r2/x.mp4",
	})
	require.NoError(t, err)

	subs, err := db.GetBriefSubmissions(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	require.Equal(t, briefcontracts.ValidationValid, subs[0].Validation)
}

func TestHandleBriefCommitRejectsUnknownBrief(t *testing.T) {
	db := briefcontracts.NewMemoryBriefDB()
	h := briefcontracts.NewHandler(db, fakeR2Validator{valid: true}, briefcontracts.NewLoggingEmailNotifier(vlog.Discard()), vlog.Discard(), nil)

	err := h.HandleBriefCommit(context.Background(), "h1", briefcontracts.Commitment{BriefID: "missing"})
	require.Error(t, err)
}

func TestHandleBriefCommitRejectsAfterDeadline(t *testing.T) {
	db := briefcontracts.NewMemoryBriefDB()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db.PutBrief(briefcontracts.Brief{BriefID: "b1", CreatedAt: now, DeadlineFinal: now.Add(time.Hour)})

	h := briefcontracts.NewHandler(db, fakeR2Validator{valid: true}, briefcontracts.NewLoggingEmailNotifier(vlog.Discard()), vlog.Discard(), func() time.Time { return now.Add(2 * time.Hour) })

	err := h.HandleBriefCommit(context.Background(), "h1", briefcontracts.Commitment{BriefID: "b1"})
	require.NoError(t, err)

	subs, err := db.GetBriefSubmissions(context.Background(), "b1")
	require.NoError(t, err)
	require.Empty(t, subs)
}

func TestHandleBriefCommitRejectsRevisionFromOutsideTopSelected(t *testing.T) {
	db := briefcontracts.NewMemoryBriefDB()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db.PutBrief(briefcontracts.Brief{BriefID: "b1", CreatedAt: now, DeadlineFinal: now.Add(24 * time.Hour)})

	h := briefcontracts.NewHandler(db, fakeR2Validator{valid: true}, briefcontracts.NewLoggingEmailNotifier(vlog.Discard()), vlog.Discard(), func() time.Time { return now })

	err := h.HandleBriefCommit(context.Background(), "h1", briefcontracts.Commitment{
		BriefID: "b1", Kind: briefcontracts.BriefSubmissionRevision,
	})
	require.Error(t, err)
	require.ErrorIs(t, err, briefcontracts.ErrUnauthorized)
}

func TestHandleBriefCommitAllowsRevisionFromTopSelectedMiner(t *testing.T) {
	db := briefcontracts.NewMemoryBriefDB()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db.PutBrief(briefcontracts.Brief{
		BriefID: "b1", CreatedAt: now, DeadlineFinal: now.Add(24 * time.Hour),
		TopSelected: map[ids.Hotkey]struct{}{"h1": {}},
	})

	h := briefcontracts.NewHandler(db, fakeR2Validator{valid: true}, briefcontracts.NewLoggingEmailNotifier(vlog.Discard()), vlog.Discard(), func() time.Time { return now })

	err := h.HandleBriefCommit(context.Background(), "h1", briefcontracts.Commitment{
		BriefID: "b1", Kind: briefcontracts.BriefSubmissionRevision, ArtifactURL: "https://r2/x.mp4",
	})
	require.NoError(t, err)

	subs, err := db.GetBriefSubmissions(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
}

func TestHandleBriefCommitRejectsInvalidArtifact(t *testing.T) {
	db := briefcontracts.NewMemoryBriefDB()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db.PutBrief(briefcontracts.Brief{BriefID: "b1", CreatedAt: now, DeadlineFinal: now.Add(24 * time.Hour)})

	h := briefcontracts.NewHandler(db, fakeR2Validator{valid: false}, briefcontracts.NewLoggingEmailNotifier(vlog.Discard()), vlog.Discard(), func() time.Time { return now })

	err := h.HandleBriefCommit(context.Background(), "h1", briefcontracts.Commitment{BriefID: "b1", ArtifactURL: "https://r2/bad"})
	require.Error(t, err)
	require.ErrorIs(t, err, briefcontracts.ErrArtifactInvalid)
}

func TestHandleBriefCommitRejectsDuplicateSubmission(t *testing.T) {
	db := briefcontracts.NewMemoryBriefDB()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db.PutBrief(briefcontracts.Brief{BriefID: "b1", CreatedAt: now, DeadlineFinal: now.Add(24 * time.Hour)})

	h := briefcontracts.NewHandler(db, fakeR2Validator{valid: true}, briefcontracts.NewLoggingEmailNotifier(vlog.Discard()), vlog.Discard(), func() time.Time { return now })

	commit := briefcontracts.Commitment{BriefID: "b1", ArtifactURL: "https://r2/x.mp4"}
	require.NoError(t, h.HandleBriefCommit(context.Background(), "h1", commit))
	require.NoError(t, h.HandleBriefCommit(context.Background(), "h1", commit))

	subs, err := db.GetBriefSubmissions(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
}
