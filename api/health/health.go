// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package health runs named liveness checks (chain RPC reachability,
// performance store reachability, ...) and exposes the aggregate result
// over HTTP for the validator's /healthz endpoint.
package health

import (
	"context"
	"time"
)

// Checker reports on the health of one dependency.
type Checker interface {
	HealthCheck(context.Context) (interface{}, error)
}

// CheckerFunc adapts a plain function to Checker.
type CheckerFunc func(context.Context) (interface{}, error)

// HealthCheck implements Checker.
func (f CheckerFunc) HealthCheck(ctx context.Context) (interface{}, error) { return f(ctx) }

// Report is the aggregate result of running every registered Checker.
type Report struct {
	Healthy  bool             `json:"healthy"`
	Version  string           `json:"version,omitempty"`
	Checks   map[string]Check `json:"checks,omitempty"`
	Duration time.Duration    `json:"duration"`
}

// Check is the result of a single named Checker.
type Check struct {
	Healthy  bool        `json:"healthy"`
	Error    string      `json:"error,omitempty"`
	Details  interface{} `json:"details,omitempty"`
	Duration time.Duration `json:"duration"`
}
