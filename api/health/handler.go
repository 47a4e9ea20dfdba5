// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package health

import (
	"encoding/json"
	"net/http"

	liblog "github.com/luxfi/log"
)

// Handler returns an http.HandlerFunc suitable for mounting at /healthz. It
// logs unhealthy reports at Warn so an operator tailing logs sees the same
// signal a scrape would.
func Handler(reg *Registry, logger liblog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := reg.Report(r.Context())
		status := http.StatusOK
		if !report.Healthy {
			status = http.StatusServiceUnavailable
			logger.Warn("health check failed", "checks", report.Checks)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(report)
	}
}
