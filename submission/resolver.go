// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package submission

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"
	"time"

	liblog "github.com/luxfi/log"

	"github.com/contentscore/validator/chainadapter"
	"github.com/contentscore/validator/config"
	"github.com/contentscore/validator/ids"
)

// BriefHandler dispatches a brief commitment to the brief-submission
// collaborator (spec §6.3). It is satisfied by package briefcontracts;
// defined here so submission has no import-time dependency on it.
type BriefHandler interface {
	HandleBriefCommit(ctx context.Context, hotkey ids.Hotkey, brief chainadapter.Commitment) error
}

type gistLine struct {
	ContentID      string `json:"content_id"`
	Platform       string `json:"platform"`
	DirectVideoURL string `json:"direct_video_url"`
}

// Resolver implements spec §4.2 over a GistFetcher and a BriefHandler.
type Resolver struct {
	gists  GistFetcher
	briefs BriefHandler
	cfg    config.Config
	log    liblog.Logger
}

// NewResolver returns a Resolver. briefs may be nil if brief commitments
// should simply be acknowledged without further action (e.g. in tests).
func NewResolver(gists GistFetcher, briefs BriefHandler, cfg config.Config, logger liblog.Logger) *Resolver {
	return &Resolver{gists: gists, briefs: briefs, cfg: cfg, log: logger}
}

// Resolve classifies peer.Commitment and runs the matching branch of
// spec §4.2.
func (r *Resolver) Resolve(ctx context.Context, peer chainadapter.Peer) Outcome {
	commit := chainadapter.ParseCommitment(peer.Commitment)

	switch commit.Kind {
	case chainadapter.CommitmentGist:
		return r.resolveGist(ctx, peer.Hotkey, commit)
	case chainadapter.CommitmentBrief:
		return r.resolveBrief(ctx, peer.Hotkey, commit)
	default:
		return Outcome{Kind: OutcomeInvalid, Succeeded: true}
	}
}

func (r *Resolver) resolveGist(ctx context.Context, hotkey ids.Hotkey, commit chainadapter.Commitment) Outcome {
	fetchCtx, cancel := withTimeout(ctx, r.gistFetchTimeout())
	defer cancel()

	raw, err := r.gists.FetchGist(fetchCtx, commit.Username, commit.GistID)
	if err != nil {
		r.log.Warn("gist fetch failed, leaving prior submissions intact",
			"hotkey", hotkey, "username", commit.Username, "gist_id", commit.GistID, "err", err)
		return Outcome{Kind: OutcomeGist, Succeeded: false}
	}

	submissions := r.parseGist(hotkey, raw)
	if len(submissions) > r.cfg.MaxSubmissionsPerHotkey {
		dropped := len(submissions) - r.cfg.MaxSubmissionsPerHotkey
		r.log.Warn("truncating submissions to per-hotkey cap",
			"hotkey", hotkey, "cap", r.cfg.MaxSubmissionsPerHotkey, "dropped", dropped)
		submissions = submissions[:r.cfg.MaxSubmissionsPerHotkey]
	}
	return Outcome{Kind: OutcomeGist, Submissions: submissions, Succeeded: true}
}

// parseGist parses raw as newline-delimited JSON, dropping malformed lines
// and platforms outside the allow-list, and deduplicating by (platform,
// content_id) keeping the first occurrence (spec §4.2, §6.2).
func (r *Resolver) parseGist(hotkey ids.Hotkey, raw string) []Submission {
	seen := make(map[ids.SubmissionKey]struct{})
	var out []Submission

	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec gistLine
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			r.log.Warn("dropping malformed gist line", "hotkey", hotkey, "err", err)
			continue
		}
		platform := ids.Platform(rec.Platform)
		if !r.cfg.AllowsPlatform(platform) {
			continue
		}
		sub := Submission{
			ContentID:      ids.ContentID(rec.ContentID),
			Platform:       platform,
			DirectVideoURL: rec.DirectVideoURL,
		}
		key := sub.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, sub)
	}
	return out
}

func (r *Resolver) resolveBrief(ctx context.Context, hotkey ids.Hotkey, commit chainadapter.Commitment) Outcome {
	if r.briefs != nil {
		if err := r.briefs.HandleBriefCommit(ctx, hotkey, commit); err != nil {
			r.log.Warn("brief commit handling failed", "hotkey", hotkey, "brief_id", commit.BriefID, "err", err)
		}
	}
	// A brief commitment never touches the generic submission set.
	return Outcome{Kind: OutcomeBrief, Succeeded: true}
}

func (r *Resolver) gistFetchTimeout() time.Duration {
	if r.cfg.GistFetchTimeout > 0 {
		return r.cfg.GistFetchTimeout
	}
	return 15 * time.Second
}
