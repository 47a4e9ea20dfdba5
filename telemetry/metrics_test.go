// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package telemetry_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/contentscore/validator/telemetry"
)

func TestNewMetricsRegistersEveryCollector(t *testing.T) {
	reg := telemetry.NewRegistry()
	m, err := telemetry.NewMetrics("contentscore", reg)
	require.NoError(t, err)
	require.NotNil(t, m)

	families, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, families)
}

func TestMultiGathererComposesSubRegistries(t *testing.T) {
	mg := telemetry.NewMultiGatherer()
	a := prometheus.NewRegistry()
	b := prometheus.NewRegistry()
	require.NoError(t, mg.Register("a", a))
	require.NoError(t, mg.Register("b", b))
	require.Error(t, mg.Register("a", a))

	families, err := mg.Gather()
	require.NoError(t, err)
	require.Empty(t, families)
}
