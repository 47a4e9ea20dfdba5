// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Command validator runs the content-scoring validator: it reconciles
// miner submissions against the chain's metagraph, fetches engagement
// and AI-authenticity metrics, scores them, and periodically publishes
// a weight vector back to the chain (spec §4).
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gorilla/rpc"
	rpcjson "github.com/gorilla/rpc/json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/contentscore/validator/activity"
	"github.com/contentscore/validator/api"
	"github.com/contentscore/validator/api/health"
	"github.com/contentscore/validator/briefcontracts"
	"github.com/contentscore/validator/chainadapter"
	"github.com/contentscore/validator/config"
	vlog "github.com/contentscore/validator/log"
	"github.com/contentscore/validator/metricclient"
	"github.com/contentscore/validator/orchestrator"
	"github.com/contentscore/validator/store"
	"github.com/contentscore/validator/submission"
	"github.com/contentscore/validator/telemetry"
)

// aiScoreCacheTTL bounds how long a completed AI-detector result is reused
// for the same video URL (spec §4.3); it is not the once-per-lifetime gate,
// which is the submission's persisted checked_for_ai flag.
const aiScoreCacheTTL = 10 * time.Minute

func main() {
	cfg, err := config.Load(os.Args[1:], config.OSEnv)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := cfg.Verify(); err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := vlog.New(cfg.LogFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	chain := chainadapter.NewHTTPAdapter(cfg.ChainRPCURL, nil, logger)
	logger.Info("dialing chain rpc adapter", "url", cfg.ChainRPCURL)
	if err := chain.Dial(ctx); err != nil {
		logger.Error("chain rpc dial failed", "err", err)
		os.Exit(1)
	}

	perf := store.New(store.NewMemDatabase())

	tracker := metricclient.NewTrackerClient(cfg.ServicePlatformTrackerURL, &http.Client{Timeout: cfg.PlatformTrackerTimeout})
	detector := metricclient.NewAIDetectorClient(cfg.ServiceAIDetectorURL, 0, &http.Client{Timeout: cfg.AIDetectorTimeout})
	metrics, err := metricclient.NewClient(tracker, detector, aiScoreCacheTTL, logger)
	if err != nil {
		logger.Error("metric client init failed", "err", err)
		os.Exit(1)
	}
	defer metrics.Close()

	briefDB := briefcontracts.NewMemoryBriefDB()
	briefHandler := briefcontracts.NewHandler(
		briefDB,
		briefcontracts.NewHTTPR2Validator(nil),
		briefcontracts.NewLoggingEmailNotifier(logger),
		logger,
		nil,
	)

	gists := submission.NewHTTPGistFetcher("https://gist.githubusercontent.com", nil)
	resolver := submission.NewResolver(gists, orchestrator.NewBriefHandlerAdapter(briefHandler), cfg, logger)

	activityTracker := activity.NewTracker()

	reg := telemetry.NewRegistry()
	tel, err := telemetry.NewMetrics(cfg.SignatureProjectTag, reg)
	if err != nil {
		logger.Error("telemetry init failed", "err", err)
		os.Exit(1)
	}

	orc := orchestrator.New(cfg, chain, resolver, metrics, perf, activityTracker, briefDB, tel, logger)

	healthReg := health.NewRegistry()
	healthReg.SetVersion(buildVersion())
	healthReg.Register("chain_rpc", health.CheckerFunc(func(ctx context.Context) (interface{}, error) {
		_, err := chain.FetchPeers(ctx, cfg.Netuid)
		return nil, err
	}))
	healthReg.Register("store", health.CheckerFunc(func(context.Context) (interface{}, error) {
		return nil, nil
	}))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = api.WriteHealth(w, r, healthReg)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	rpcServer := rpc.NewServer()
	rpcServer.RegisterCodec(rpcjson.NewCodec(), "application/json")
	rpcServer.RegisterCodec(rpcjson.NewCodec(), "application/json;charset=UTF-8")
	if err := rpcServer.RegisterService(&statusService{orc: orc}, "validator"); err != nil {
		logger.Error("rpc service registration failed", "err", err)
		os.Exit(1)
	}
	mux.Handle("/rpc", rpcServer)

	httpServer := &http.Server{Addr: cfg.HTTPAddr, Handler: mux}
	go func() {
		logger.Info("observability http server starting", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server failed", "err", err)
		}
	}()

	go orc.Run(ctx)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpServer.Shutdown(shutdownCtx)
}

// buildVersion reports the module's build/version string for /healthz,
// read from the binary's embedded build info rather than a fabricated
// version-reporting dependency (see DESIGN.md).
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}
	return "(devel)"
}

// statusService exposes validator.Status over JSON-RPC (spec §10.5's
// observability surface): the current metagraph size and netuid, for an
// operator to confirm the validator is actually synced.
type statusService struct {
	orc *orchestrator.Orchestrator
}

// StatusArgs is empty; the call takes no parameters.
type StatusArgs struct{}

// StatusReply is validator.Status's result shape.
type StatusReply struct {
	Netuid        uint16 `json:"netuid"`
	MetagraphSize int    `json:"metagraph_size"`
	Synced        bool   `json:"synced"`
}

// Status implements the gorilla/rpc service method contract:
// func(*http.Request, *Args, *Reply) error.
func (s *statusService) Status(_ *http.Request, _ *StatusArgs, reply *StatusReply) error {
	idx := s.orc.Index()
	if idx == nil {
		reply.Synced = false
		return nil
	}
	reply.Netuid = idx.Snapshot().Netuid
	reply.MetagraphSize = len(idx.Snapshot().Peers)
	reply.Synced = true
	return nil
}
