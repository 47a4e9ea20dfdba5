// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package orchestrator runs the two cooperative periodic loops named in
// spec §4.7: reconcile (chain sync + submission resolution + metric
// acquisition) and publish (scoring + weight distribution). Both loops
// catch every component-level error and continue with the next period;
// no error is allowed to kill the orchestrator (spec §7).
package orchestrator

import (
	"context"
	"sync"
	"time"

	liblog "github.com/luxfi/log"

	"github.com/contentscore/validator/activity"
	"github.com/contentscore/validator/briefcontracts"
	"github.com/contentscore/validator/chainadapter"
	"github.com/contentscore/validator/config"
	"github.com/contentscore/validator/metricclient"
	"github.com/contentscore/validator/store"
	"github.com/contentscore/validator/submission"
	"github.com/contentscore/validator/telemetry"
)

// Orchestrator wires every component named in spec §4 behind the two
// loops of §4.7. It holds no mutable state of its own beyond the
// copy-on-write metagraph Index handoff (spec §5): the append-only store
// and the activity tracker are the only shared mutable resources, and
// both enforce their own concurrency safety.
type Orchestrator struct {
	cfg config.Config

	chain    chainadapter.Adapter
	resolver *submission.Resolver
	metrics  *metricclient.Client
	perf     *store.Store
	activity *activity.Tracker
	briefDB  briefcontracts.BriefDB
	tel      *telemetry.Metrics
	log      liblog.Logger

	indexMu sync.RWMutex
	index   *chainadapter.Index

	publishOnce  sync.Once
	startPublish chan struct{}
}

// New wires an Orchestrator. tel may be nil to disable metrics recording
// (tests typically pass nil).
func New(
	cfg config.Config,
	chain chainadapter.Adapter,
	resolver *submission.Resolver,
	metrics *metricclient.Client,
	perf *store.Store,
	tracker *activity.Tracker,
	briefDB briefcontracts.BriefDB,
	tel *telemetry.Metrics,
	logger liblog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:          cfg,
		chain:        chain,
		resolver:     resolver,
		metrics:      metrics,
		perf:         perf,
		activity:     tracker,
		briefDB:      briefDB,
		tel:          tel,
		log:          logger,
		startPublish: make(chan struct{}),
	}
}

// Run blocks until ctx is cancelled, running the reconcile loop on
// cfg.SubmissionUpdateInterval and the publish loop on
// cfg.SetWeightsInterval. The publish loop does not start until the
// first reconcile iteration completes successfully (spec §4.7).
func (o *Orchestrator) Run(ctx context.Context) {
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		o.runReconcileLoop(ctx)
	}()
	go func() {
		defer wg.Done()
		o.runPublishLoop(ctx)
	}()

	wg.Wait()
}

func (o *Orchestrator) runReconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(o.cfg.SubmissionUpdateInterval)
	defer ticker.Stop()

	o.runReconcileOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.runReconcileOnce(ctx)
		}
	}
}

func (o *Orchestrator) runReconcileOnce(ctx context.Context) {
	start := time.Now()
	if err := o.Reconcile(ctx); err != nil {
		o.log.Warn("reconcile cycle failed, retrying next period", "err", err)
		o.recordCycleError("reconcile")
		return
	}
	o.recordCycle(time.Since(start))
	o.publishOnce.Do(func() { close(o.startPublish) })
}

func (o *Orchestrator) runPublishLoop(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-o.startPublish:
	}

	ticker := time.NewTicker(o.cfg.SetWeightsInterval)
	defer ticker.Stop()

	o.runPublishOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.runPublishOnce(ctx)
		}
	}
}

func (o *Orchestrator) runPublishOnce(ctx context.Context) {
	start := time.Now()
	if err := o.Publish(ctx); err != nil {
		o.log.Warn("publish cycle failed, retrying next period", "err", err)
		o.recordCycleError("publish")
		return
	}
	o.recordCycle(time.Since(start))
}

func (o *Orchestrator) setIndex(idx *chainadapter.Index) {
	o.indexMu.Lock()
	defer o.indexMu.Unlock()
	o.index = idx
}

// Index returns the most recently built metagraph Index. The publish
// loop reads this without coordinating with an in-flight reconcile
// (spec §5): it may see a one-cycle-stale but internally consistent
// snapshot.
func (o *Orchestrator) Index() *chainadapter.Index {
	o.indexMu.RLock()
	defer o.indexMu.RUnlock()
	return o.index
}

func (o *Orchestrator) recordCycle(d time.Duration) {
	if o.tel == nil {
		return
	}
	o.tel.CyclesTotal.Inc()
	o.tel.CycleDurationSeconds.Observe(d.Seconds())
	o.tel.CycleDurationAverage.Observe(float64(d))
}

func (o *Orchestrator) recordCycleError(stage string) {
	if o.tel == nil {
		return
	}
	o.tel.CycleErrorsTotal.WithLabelValues(stage).Inc()
}
