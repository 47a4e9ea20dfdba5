// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package briefcontracts

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	liblog "github.com/luxfi/log"

	"github.com/contentscore/validator/ids"
)

// Commitment is the subset of a parsed chainadapter.Commitment this
// package needs. It is declared here, not imported from chainadapter, so
// briefcontracts stays a leaf package the rest of the validator can
// depend on without a cycle; submission.Resolver's caller is responsible
// for constructing one from the real chainadapter.Commitment.
type Commitment struct {
	BriefID     string
	Kind        BriefSubmissionKind
	ArtifactURL string
}

// Handler implements submission.BriefHandler: it validates a brief
// commitment's artifact via R2, checks authorization for revisions, and
// records the resulting BriefSubmission (spec §4.2, §6.3).
type Handler struct {
	db     BriefDB
	r2     R2Validator
	email  EmailNotifier
	log    liblog.Logger
	nowFn  func() time.Time
}

// NewHandler wires a Handler. nowFn defaults to time.Now; tests may
// override it for deterministic deadline math.
func NewHandler(db BriefDB, r2 R2Validator, email EmailNotifier, logger liblog.Logger, nowFn func() time.Time) *Handler {
	if nowFn == nil {
		nowFn = time.Now
	}
	return &Handler{db: db, r2: r2, email: email, log: logger, nowFn: nowFn}
}

// HandleBriefCommit implements the brief branch of spec §4.2: confirm the
// brief exists and is still open, enforce that a revision (sub_2) only
// comes from a miner in the brief's top_selected set, validate the
// artifact, then record the submission. Every rejection is logged and
// emailed with its reason. A passed deadline or a duplicate submission
// returns nil; an unauthorized revision returns ErrUnauthorized and a
// failed artifact check returns ErrArtifactInvalid. An unknown brief, an
// R2 transport failure, or a store failure is returned wrapped.
func (h *Handler) HandleBriefCommit(ctx context.Context, hotkey ids.Hotkey, commit Commitment) error {
	brief, err := h.db.GetBrief(ctx, commit.BriefID)
	if err != nil {
		h.log.Warn("brief commit references unknown brief", "hotkey", hotkey, "brief_id", commit.BriefID, "err", err)
		return errors.Wrapf(err, "briefcontracts: brief %s", commit.BriefID)
	}

	now := h.nowFn()
	if now.After(brief.DeadlineFinal) {
		h.reject(ctx, hotkey, commit.BriefID, "brief deadline has passed")
		return nil
	}

	if commit.Kind == BriefSubmissionRevision && !brief.InTopSelected(hotkey) {
		h.reject(ctx, hotkey, commit.BriefID, "revision submitted by a miner outside top_selected")
		return errors.Wrapf(ErrUnauthorized, "hotkey %s brief %s", hotkey, commit.BriefID)
	}

	valid, err := h.r2.Validate(ctx, commit.ArtifactURL)
	if err != nil {
		h.log.Warn("r2 validation failed", "hotkey", hotkey, "brief_id", commit.BriefID, "err", err)
		return errors.Wrapf(err, "briefcontracts: validate artifact for %s", hotkey)
	}
	if !valid {
		h.reject(ctx, hotkey, commit.BriefID, "artifact failed r2 validation")
		return errors.Wrapf(ErrArtifactInvalid, "hotkey %s brief %s", hotkey, commit.BriefID)
	}

	sub := BriefSubmission{
		BriefID:     commit.BriefID,
		MinerHotkey: hotkey,
		Kind:        commit.Kind,
		ArtifactURL: commit.ArtifactURL,
		SubmittedAt: now,
		Validation:  ValidationValid,
	}
	if err := h.db.CreateSubmission(ctx, sub); err != nil {
		if errors.Is(err, ErrDuplicateSubmission) {
			h.reject(ctx, hotkey, commit.BriefID, "duplicate submission")
			return nil
		}
		return err
	}

	h.email.NotifySubmissionAccepted(ctx, hotkey, commit.BriefID)
	return nil
}

func (h *Handler) reject(ctx context.Context, hotkey ids.Hotkey, briefID, reason string) {
	h.log.Info("brief submission rejected", "hotkey", hotkey, "brief_id", briefID, "reason", reason)
	h.email.NotifySubmissionRejected(ctx, hotkey, briefID, reason)
}
