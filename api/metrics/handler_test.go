// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contentscore/validator/api/metrics"
	"github.com/contentscore/validator/telemetry"
)

func TestHandlerServesRegisteredCollectors(t *testing.T) {
	reg := telemetry.NewRegistry()
	_, err := telemetry.NewMetrics("contentscore", reg)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	metrics.Handler(reg).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "contentscore_cycles_total")
}
