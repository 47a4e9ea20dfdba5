// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package orchestrator

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/contentscore/validator/briefcontracts"
	"github.com/contentscore/validator/chainadapter"
	"github.com/contentscore/validator/ids"
	"github.com/contentscore/validator/scorer"
	"github.com/contentscore/validator/store"
	"github.com/contentscore/validator/weight"
)

// Publish implements one iteration of spec §4.6's scoring and weight
// distribution, reading the metagraph Index the most recent Reconcile
// built (spec §5: the publish loop never blocks on an in-flight
// reconcile).
func (o *Orchestrator) Publish(ctx context.Context) error {
	idx := o.Index()
	if idx == nil {
		return nil
	}
	now := time.Now()

	performances, err := o.performancesByHotkey()
	if err != nil {
		return errors.Wrap(err, "orchestrator: load performances")
	}
	engagement := scorer.EngagementRate(idx.ActiveHotkeys(), performances, o.cfg)

	briefs, submissionsByBrief, err := o.loadRecentBriefs(ctx, now)
	if err != nil {
		return errors.Wrap(err, "orchestrator: load recent briefs")
	}
	briefScores := scorer.BriefScore(briefs, submissionsByBrief, now, o.cfg)

	active := o.activeSet(idx, performances, submissionsByBrief, now)
	if o.tel != nil {
		o.tel.ActiveMinersGauge.Set(float64(len(active)))
	}

	recentBrief, recentBriefPresent, recentBriefSubmitters, err := o.recentCompletedBrief(ctx)
	if err != nil {
		return errors.Wrap(err, "orchestrator: load recent completed brief")
	}

	result, ok := weight.Distribute(weight.Inputs{
		Active:                         active,
		Engagement:                     engagement,
		Brief:                          briefScores,
		RecentCompletedBrief:           recentBrief,
		RecentCompletedBriefPresent:    recentBriefPresent,
		RecentCompletedBriefSubmitters: recentBriefSubmitters,
		UIDs:                           uidToHotkey(idx),
		Now:                            now,
	}, o.cfg)
	if !ok {
		o.log.Info("publish cycle skipped: empty active set")
		return nil
	}
	if o.tel != nil {
		o.tel.EligibleMinersGauge.WithLabelValues("total").Set(float64(len(result.Eligible)))
	}

	ack, err := o.chain.PublishWeights(ctx, o.cfg.Netuid, result.UIDs, result.Weights, o.cfg.VersionKey)
	if err != nil {
		if o.tel != nil {
			o.tel.WeightPublishErrorsTotal.Inc()
		}
		return errors.Wrap(err, "orchestrator: publish weights")
	}
	if !ack.OK {
		if o.tel != nil {
			o.tel.WeightPublishErrorsTotal.Inc()
		}
		return errors.Newf("orchestrator: publish weights rejected: %s", ack.Info)
	}

	if o.tel != nil {
		o.tel.WeightsPublishedTotal.Inc()
		o.tel.LastPublishUnixSeconds.Set(float64(now.Unix()))
	}
	return nil
}

func (o *Orchestrator) performancesByHotkey() (map[ids.Hotkey][]store.Performance, error) {
	out := make(map[ids.Hotkey][]store.Performance)
	err := o.perf.IterPerformances(func(p store.Performance) error {
		out[p.Hotkey] = append(out[p.Hotkey], p)
		return nil
	})
	return out, err
}

// loadRecentBriefs fetches every brief created within cfg.ActiveWindow
// (the larger of the two brief-related windows) and their submissions,
// shared by both brief scoring (which further narrows to
// cfg.BriefScoreWindow) and active-set determination.
func (o *Orchestrator) loadRecentBriefs(ctx context.Context, now time.Time) ([]briefcontracts.Brief, map[string][]briefcontracts.BriefSubmission, error) {
	if o.briefDB == nil {
		return nil, nil, nil
	}
	briefs, err := o.briefDB.ListRecentBriefs(ctx, now.Add(-o.cfg.ActiveWindow))
	if err != nil {
		return nil, nil, err
	}
	submissionsByBrief := make(map[string][]briefcontracts.BriefSubmission, len(briefs))
	for _, b := range briefs {
		subs, err := o.briefDB.GetBriefSubmissions(ctx, b.BriefID)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "orchestrator: load submissions for brief %s", b.BriefID)
		}
		submissionsByBrief[b.BriefID] = subs
	}
	return briefs, submissionsByBrief, nil
}

// activeSet implements the set A of spec §4.6: every current metagraph
// member with either a recent valid brief submission or a recent valid
// generic observation (per the activity tracker's fallback rule).
func (o *Orchestrator) activeSet(idx *chainadapter.Index, performances map[ids.Hotkey][]store.Performance, submissionsByBrief map[string][]briefcontracts.BriefSubmission, now time.Time) map[ids.Hotkey]struct{} {
	briefActive := make(map[ids.Hotkey]struct{})
	for _, subs := range submissionsByBrief {
		for _, s := range subs {
			if s.Validation == briefcontracts.ValidationValid {
				briefActive[s.MinerHotkey] = struct{}{}
			}
		}
	}

	active := make(map[ids.Hotkey]struct{})
	for _, peer := range idx.Snapshot().Peers {
		if _, ok := briefActive[peer.Hotkey]; ok {
			active[peer.Hotkey] = struct{}{}
			continue
		}
		hasPersisted := len(performances[peer.Hotkey]) > 0
		if o.activity.ActiveWithinHotkey(peer.Hotkey, now, o.cfg.ActiveWindow, hasPersisted) {
			active[peer.Hotkey] = struct{}{}
		}
	}
	return active
}

func (o *Orchestrator) recentCompletedBrief(ctx context.Context) (briefcontracts.Brief, bool, map[ids.Hotkey]struct{}, error) {
	if o.briefDB == nil {
		return briefcontracts.Brief{}, false, nil, nil
	}
	brief, err := o.briefDB.GetRecentCompletedBrief(ctx)
	if errors.Is(err, briefcontracts.ErrBriefNotFound) {
		return briefcontracts.Brief{}, false, nil, nil
	}
	if err != nil {
		return briefcontracts.Brief{}, false, nil, err
	}
	subs, err := o.briefDB.GetBriefSubmissions(ctx, brief.BriefID)
	if err != nil {
		return briefcontracts.Brief{}, false, nil, err
	}
	submitters := make(map[ids.Hotkey]struct{}, len(subs))
	for _, s := range subs {
		submitters[s.MinerHotkey] = struct{}{}
	}
	return brief, true, submitters, nil
}

func uidToHotkey(idx *chainadapter.Index) map[ids.UID]ids.Hotkey {
	out := make(map[ids.UID]ids.Hotkey)
	for _, uid := range idx.UIDs() {
		if peer, ok := idx.PeerByUID(uid); ok {
			out[uid] = peer.Hotkey
		}
	}
	return out
}
