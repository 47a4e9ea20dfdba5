// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contentscore/validator/api/health"
)

func TestReportHealthyWhenAllChecksPass(t *testing.T) {
	reg := health.NewRegistry()
	reg.Register("store", health.CheckerFunc(func(context.Context) (interface{}, error) {
		return "ok", nil
	}))
	reg.Register("chain", health.CheckerFunc(func(context.Context) (interface{}, error) {
		return nil, nil
	}))

	report := reg.Report(context.Background())
	require.True(t, report.Healthy)
	require.Len(t, report.Checks, 2)
}

func TestReportUnhealthyWhenAnyCheckFails(t *testing.T) {
	reg := health.NewRegistry()
	reg.Register("store", health.CheckerFunc(func(context.Context) (interface{}, error) {
		return nil, errors.New("boom")
	}))

	report := reg.Report(context.Background())
	require.False(t, report.Healthy)
	require.Equal(t, "boom", report.Checks["store"].Error)
}

func TestReportIncludesConfiguredVersion(t *testing.T) {
	reg := health.NewRegistry()
	reg.SetVersion("v1.2.3")

	report := reg.Report(context.Background())
	require.Equal(t, "v1.2.3", report.Version)
}
