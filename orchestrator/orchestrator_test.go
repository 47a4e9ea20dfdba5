// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package orchestrator_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/contentscore/validator/activity"
	"github.com/contentscore/validator/briefcontracts"
	"github.com/contentscore/validator/chainadapter"
	"github.com/contentscore/validator/config"
	"github.com/contentscore/validator/ids"
	vlog "github.com/contentscore/validator/log"
	"github.com/contentscore/validator/metricclient"
	"github.com/contentscore/validator/orchestrator"
	"github.com/contentscore/validator/store"
	"github.com/contentscore/validator/submission"
)

// fakeChain is an in-memory chainadapter.Adapter double: one metagraph
// snapshot served forever, and every published vector recorded for
// assertions.
type fakeChain struct {
	snapshot    chainadapter.MetagraphSnapshot
	fetchErr    error
	published   []publishedCall
}

type publishedCall struct {
	uids    []ids.UID
	weights []uint16
}

func (f *fakeChain) FetchPeers(context.Context, uint16) (chainadapter.MetagraphSnapshot, error) {
	if f.fetchErr != nil {
		return chainadapter.MetagraphSnapshot{}, f.fetchErr
	}
	return f.snapshot, nil
}

func (f *fakeChain) PublishWeights(_ context.Context, _ uint16, uids []ids.UID, weights []uint16, _ uint32) (chainadapter.Ack, error) {
	f.published = append(f.published, publishedCall{uids: uids, weights: weights})
	return chainadapter.Ack{OK: true}, nil
}

type fakeGistFetcher struct {
	content string
}

func (f fakeGistFetcher) FetchGist(context.Context, string, string) (string, error) {
	return f.content, nil
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Netuid = 1
	cfg.MaxSubmissionsPerHotkey = 256
	cfg.MinPopulationForPercentile = 0 // percentile applies at any size; a lone miner meets its own value
	cfg.SignatureProjectTag = "contentscore"
	return cfg
}

func newTestOrchestrator(t *testing.T, cfg config.Config, chain chainadapter.Adapter, gistContent string, trackerSrv, detectorSrv *httptest.Server) (*orchestrator.Orchestrator, *briefcontracts.MemoryBriefDB) {
	t.Helper()

	perf := store.New(store.NewMemDatabase())

	tracker := metricclient.NewTrackerClient(trackerSrv.URL, trackerSrv.Client())
	detector := metricclient.NewAIDetectorClient(detectorSrv.URL, 0, detectorSrv.Client())
	mclient, err := metricclient.NewClient(tracker, detector, time.Minute, vlog.Discard())
	require.NoError(t, err)
	t.Cleanup(mclient.Close)

	briefDB := briefcontracts.NewMemoryBriefDB()
	briefHandler := briefcontracts.NewHandler(briefDB, fakeR2Validator{}, briefcontracts.NewLoggingEmailNotifier(vlog.Discard()), vlog.Discard(), nil)

	resolver := submission.NewResolver(fakeGistFetcher{content: gistContent}, orchestrator.NewBriefHandlerAdapter(briefHandler), cfg, vlog.Discard())
	activityTracker := activity.NewTracker()

	orc := orchestrator.New(cfg, chain, resolver, mclient, perf, activityTracker, briefDB, nil, vlog.Discard())
	return orc, briefDB
}

type fakeR2Validator struct{}

func (fakeR2Validator) Validate(context.Context, string) (bool, error) { return true, nil }

func TestReconcileBuildsIndexFromMetagraph(t *testing.T) {
	cfg := testConfig()
	trackerSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"caption":"` + cfg.SignatureTemplate("h1") + `","view_count":100,"like_count":1,"comment_count":1}`))
	}))
	defer trackerSrv.Close()
	detectorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"mean_ai_generated":0.9}`))
	}))
	defer detectorSrv.Close()

	chain := &fakeChain{snapshot: chainadapter.MetagraphSnapshot{
		Netuid: cfg.Netuid,
		Peers: []chainadapter.Peer{
			{UID: 1, Hotkey: "h1", Commitment: "alice:gist1", Stake: 10},
		},
	}}

	gist := `{"content_id":"v1","platform":"yt/video","direct_video_url":"http://video/1"}`
	orc, _ := newTestOrchestrator(t, cfg, chain, gist, trackerSrv, detectorSrv)

	require.Nil(t, orc.Index())
	require.NoError(t, orc.Reconcile(context.Background()))

	idx := orc.Index()
	require.NotNil(t, idx)
	require.True(t, idx.Contains("h1"))
}

func TestReconcileLeavesIndexUntouchedOnChainFailure(t *testing.T) {
	cfg := testConfig()
	trackerSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer trackerSrv.Close()
	detectorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"mean_ai_generated":0}`))
	}))
	defer detectorSrv.Close()

	chain := &fakeChain{fetchErr: errors.New("chain unavailable")}
	orc, _ := newTestOrchestrator(t, cfg, chain, "", trackerSrv, detectorSrv)

	err := orc.Reconcile(context.Background())
	require.Error(t, err)
	require.Nil(t, orc.Index())
}

func TestPublishSkipsWhenIndexNotYetBuilt(t *testing.T) {
	cfg := testConfig()
	trackerSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer trackerSrv.Close()
	detectorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"mean_ai_generated":0}`))
	}))
	defer detectorSrv.Close()

	chain := &fakeChain{}
	orc, _ := newTestOrchestrator(t, cfg, chain, "", trackerSrv, detectorSrv)

	require.NoError(t, orc.Publish(context.Background()))
	require.Empty(t, chain.published)
}

func TestFullCycleReconcileThenPublishPublishesWeights(t *testing.T) {
	cfg := testConfig()
	cfg.AllowedPlatforms = []ids.Platform{"yt/video"}

	trackerSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"caption":"` + cfg.SignatureTemplate("h1") + `","view_count":1000,"like_count":50,"comment_count":10,"owner_follower_count":100}`))
	}))
	defer trackerSrv.Close()
	detectorSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"mean_ai_generated":0.9}`))
	}))
	defer detectorSrv.Close()

	chain := &fakeChain{snapshot: chainadapter.MetagraphSnapshot{
		Netuid: cfg.Netuid,
		Peers: []chainadapter.Peer{
			{UID: 1, Hotkey: "h1", Commitment: "alice:gist1", Stake: 10},
		},
	}}

	gist := `{"content_id":"v1","platform":"yt/video","direct_video_url":"http://video/1"}`
	orc, _ := newTestOrchestrator(t, cfg, chain, gist, trackerSrv, detectorSrv)

	require.NoError(t, orc.Reconcile(context.Background()))
	require.NoError(t, orc.Publish(context.Background()))

	require.Len(t, chain.published, 1)
	call := chain.published[0]
	require.Equal(t, []ids.UID{1}, call.uids)
	require.Equal(t, cfg.MaxIntWeight, call.weights[0])
}
