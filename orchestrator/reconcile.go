// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/contentscore/validator/chainadapter"
	"github.com/contentscore/validator/ids"
	"github.com/contentscore/validator/metricclient"
	"github.com/contentscore/validator/scorer"
	"github.com/contentscore/validator/store"
	"github.com/contentscore/validator/submission"
)

// Reconcile implements one iteration of spec §4.7's reconcile loop:
// sync the metagraph, rebuild the uid<->hotkey index, resolve every
// peer's commitment (32-wide fan-out), persist submissions before
// fetching metrics (spec §5 ordering guarantee), then fetch one metric
// per currently-persisted submission (4-wide fan-out) under a single
// interval key captured at the start of this iteration.
func (o *Orchestrator) Reconcile(ctx context.Context) error {
	iterationStart := time.Now()
	interval := ids.NewIntervalKey(iterationStart)

	snapshot, err := o.chain.FetchPeers(ctx, o.cfg.Netuid)
	if err != nil {
		return errors.Wrap(err, "orchestrator: fetch peers")
	}
	idx := chainadapter.NewIndex(snapshot)
	o.setIndex(idx)

	if err := o.resolvePeers(ctx, snapshot.Peers); err != nil {
		return errors.Wrap(err, "orchestrator: resolve peers")
	}

	if err := o.fetchMetrics(ctx, interval, iterationStart); err != nil {
		return errors.Wrap(err, "orchestrator: fetch metrics")
	}

	return nil
}

// resolvePeers runs submission.Resolver.Resolve over every peer with a
// non-empty commitment, bounded by cfg.PeerFanout concurrent calls, and
// persists the result (spec §4.2, §4.4).
func (o *Orchestrator) resolvePeers(ctx context.Context, peers []chainadapter.Peer) error {
	sem := semaphore.NewWeighted(int64(o.cfg.PeerFanout))
	g, gctx := errgroup.WithContext(ctx)

	for _, peer := range peers {
		peer := peer
		if peer.Commitment == "" {
			continue
		}
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		g.Go(func() error {
			defer sem.Release(1)
			outcome := o.resolver.Resolve(gctx, peer)
			if o.tel != nil {
				o.tel.SubmissionsResolvedTotal.Add(float64(len(outcome.Submissions)))
			}
			if !outcome.ReplacesStore() {
				return nil
			}
			if err := o.perf.ReplacePeerSubmissions(peer.Hotkey, outcome.Submissions); err != nil {
				o.log.Warn("store: replace peer submissions failed", "hotkey", peer.Hotkey, "err", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// fetchMetrics drives spec §4.3 over every Submission the store
// currently holds, bounded by cfg.MetricFanout concurrent calls. Content
// ids are discovered from every persisted Performance document (prior
// observations) unioned with the submissions just resolved this
// iteration, since the store contract (§4.4) exposes "touching a
// content-id set" rather than a flat enumeration of every submission.
func (o *Orchestrator) fetchMetrics(ctx context.Context, interval ids.IntervalKey, now time.Time) error {
	contentIDs := make(map[ids.ContentID]struct{})
	if err := o.perf.IterPerformances(func(p store.Performance) error {
		contentIDs[p.ContentID] = struct{}{}
		return nil
	}); err != nil {
		return errors.Wrap(err, "iterate performances")
	}

	touching, err := o.perf.LoadSubmissionsTouching(contentIDs)
	if err != nil {
		return errors.Wrap(err, "load submissions touching known content ids")
	}

	sem := semaphore.NewWeighted(int64(o.cfg.MetricFanout))
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	aiCheckedByHotkey := make(map[ids.Hotkey][]submission.Submission)

	for hotkey, subs := range touching {
		hotkey := hotkey
		subs := subs
		for i := range subs {
			sub := subs[i]
			idx := i
			if err := sem.Acquire(gctx, 1); err != nil {
				break
			}
			g.Go(func() error {
				defer sem.Release(1)
				aiCheckedNow := o.fetchOneMetric(gctx, hotkey, sub, interval, now)
				if !aiCheckedNow {
					return nil
				}
				mu.Lock()
				aiCheckedByHotkey[hotkey] = append(aiCheckedByHotkey[hotkey], subs[idx])
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return o.flushAICheckedFlags(touching, aiCheckedByHotkey)
}

// fetchOneMetric performs the fetch_metric contract call for a single
// submission and appends the result to its Performance document. It
// reports whether this call invoked the AI detector for the first time,
// so the caller can batch the resulting checked_for_ai flag flip.
func (o *Orchestrator) fetchOneMetric(ctx context.Context, hotkey ids.Hotkey, sub submission.Submission, interval ids.IntervalKey, now time.Time) bool {
	result := o.metrics.FetchMetric(ctx, metricclient.Target{
		Hotkey:              hotkey,
		ContentID:           sub.ContentID,
		Platform:            sub.Platform,
		DirectVideoURL:      sub.DirectVideoURL,
		AlreadyCheckedForAI: sub.CheckedForAI,
	})
	if result == nil {
		if o.tel != nil {
			o.tel.MetricFetchErrorsTotal.WithLabelValues("fetch_failed").Inc()
		}
		return false
	}

	key := ids.PerformanceKey{Hotkey: hotkey, ContentID: sub.ContentID}
	p, err := o.perf.GetPerformance(key)
	if err != nil && !errors.Is(err, store.ErrPerformanceNotFound) {
		o.log.Warn("store: get performance failed", "key", key, "err", err)
		return false
	}
	if p.Series == nil {
		p.Series = make(map[ids.IntervalKey]metricclient.Metric)
	}
	p.Series[interval] = result.Metric

	if err := o.perf.UpsertPerformance(p); err != nil {
		o.log.Warn("store: upsert performance failed", "key", key, "err", err)
		return false
	}

	if scorer.ValidObservation(result.Metric, hotkey, o.cfg) {
		o.activity.RecordValid(key, now)
	} else if o.tel != nil {
		o.tel.AIFilteredObservationsTotal.Inc()
	}

	return result.AICheckedNow
}

// flushAICheckedFlags flips checked_for_ai for every submission the AI
// detector was actually called for this iteration, one
// replace_peer_submissions call per hotkey (spec §4.3: persisted once
// per (hotkey, content_id) lifetime).
func (o *Orchestrator) flushAICheckedFlags(all map[ids.Hotkey][]submission.Submission, checkedNow map[ids.Hotkey][]submission.Submission) error {
	for hotkey, checked := range checkedNow {
		if len(checked) == 0 {
			continue
		}
		full := all[hotkey]
		checkedKeys := make(map[ids.SubmissionKey]struct{}, len(checked))
		for _, s := range checked {
			checkedKeys[s.Key()] = struct{}{}
		}
		updated := make([]submission.Submission, len(full))
		for i, s := range full {
			if _, ok := checkedKeys[s.Key()]; ok {
				s.CheckedForAI = true
			}
			updated[i] = s
		}
		if err := o.perf.ReplacePeerSubmissions(hotkey, updated); err != nil {
			o.log.Warn("store: flush checked_for_ai flags failed", "hotkey", hotkey, "err", err)
		}
	}
	return nil
}
