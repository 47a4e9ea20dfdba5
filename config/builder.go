// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/contentscore/validator/ids"
)

// Load builds a Config from command-line flags and environment variable
// fallbacks, starting from Defaults(). Flags take precedence over
// environment variables. Load does not validate the result; call Verify()
// once wiring decides the Config is complete (e.g. after also applying
// secrets that don't belong in flags).
//
// Per the "global mutable config" design note, this is the only place in
// the codebase that reads os.Getenv or parses flags; every other component
// receives the already-built Config value.
func Load(args []string, getenv func(string) string) (Config, error) {
	cfg := Defaults()
	fs := flag.NewFlagSet("validator", flag.ContinueOnError)

	netuid := fs.Uint("netuid", uint(envUint(getenv, "NETUID", 0)), "chain subnet id")
	trackerURL := fs.String("platform-tracker-url", getenv("SERVICE_PLATFORM_TRACKER_URL"), "platform tracker service base URL")
	detectorURL := fs.String("ai-detector-url", getenv("SERVICE_AI_DETECTOR_URL"), "AI detector service base URL")
	chainRPCURL := fs.String("chain-rpc-url", getenv("CHAIN_RPC_URL"), "chain RPC adapter base URL")
	storeURI := fs.String("store-uri", getenv("STORE_URI"), "performance store URI")
	httpAddr := fs.String("http-addr", cfg.HTTPAddr, "observability HTTP bind address")
	logFile := fs.String("log-file", getenv("LOG_FILE"), "also write rotated logs to this file (stderr output continues)")
	reconcile := fs.Duration("submission-update-interval", cfg.SubmissionUpdateInterval, "reconcile loop period")
	publish := fs.Duration("set-weights-interval", cfg.SetWeightsInterval, "publish loop period")
	maxIntWeight := fs.Uint("max-int-weight", uint(cfg.MaxIntWeight), "chain fixed-point weight ceiling")
	versionKey := fs.Uint("version-key", uint(cfg.VersionKey), "on-chain weight version key")
	aiThreshold := fs.Float64("ai-generated-score-threshold", cfg.AIGeneratedScoreThreshold, "minimum ai_score to count a metric")
	emaAlpha := fs.Float64("ema-alpha", cfg.EMAAlpha, "EMA smoothing factor")
	allowedPlatforms := fs.String("allowed-platforms", joinPlatforms(cfg.AllowedPlatforms), "comma-separated platform allow-list")
	sigTag := fs.String("signature-project-tag", cfg.SignatureProjectTag, "project tag embedded in the signature token")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Netuid = uint16(*netuid)
	cfg.ServicePlatformTrackerURL = *trackerURL
	cfg.ServiceAIDetectorURL = *detectorURL
	cfg.ChainRPCURL = *chainRPCURL
	cfg.StoreURI = *storeURI
	cfg.HTTPAddr = *httpAddr
	cfg.LogFile = *logFile
	cfg.SubmissionUpdateInterval = *reconcile
	cfg.SetWeightsInterval = *publish
	cfg.MaxIntWeight = uint16(*maxIntWeight)
	cfg.VersionKey = uint32(*versionKey)
	cfg.AIGeneratedScoreThreshold = *aiThreshold
	cfg.EMAAlpha = *emaAlpha
	cfg.SignatureProjectTag = *sigTag
	if platforms := splitPlatforms(*allowedPlatforms); len(platforms) > 0 {
		cfg.AllowedPlatforms = platforms
	}

	return cfg, nil
}

func envUint(getenv func(string) string, key string, fallback uint64) uint64 {
	v := getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func joinPlatforms(platforms []ids.Platform) string {
	parts := make([]string, len(platforms))
	for i, p := range platforms {
		parts[i] = string(p)
	}
	return strings.Join(parts, ",")
}

func splitPlatforms(s string) []ids.Platform {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]ids.Platform, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, ids.Platform(p))
		}
	}
	return out
}

// OSEnv is the standard os.Getenv, suitable as Load's getenv argument in
// production.
func OSEnv(key string) string { return os.Getenv(key) }
