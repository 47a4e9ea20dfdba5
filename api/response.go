// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package api holds the small set of HTTP response helpers shared by the
// validator's observability endpoints (/healthz, the validator.Status RPC).
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/contentscore/validator/api/health"
)

// Response is the envelope written by WriteJSON/WriteError/WriteSuccess.
type Response struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error is the error half of a Response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WriteJSON writes v as a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes err as a Response with Success=false.
func WriteError(w http.ResponseWriter, status int, err error) error {
	return WriteJSON(w, status, Response{
		Success: false,
		Error:   &Error{Code: status, Message: err.Error()},
	})
}

// WriteSuccess writes result as a Response with Success=true.
func WriteSuccess(w http.ResponseWriter, result interface{}) error {
	return WriteJSON(w, http.StatusOK, Response{Success: true, Result: result})
}

// WriteHealth runs every registered checker and writes the aggregate
// health.Report, using 200 when healthy and 503 otherwise so load balancers
// and chain infra consumers can probe this endpoint directly.
func WriteHealth(w http.ResponseWriter, r *http.Request, checks *health.Registry) error {
	report := checks.Report(r.Context())
	status := http.StatusOK
	if !report.Healthy {
		status = http.StatusServiceUnavailable
	}
	return WriteJSON(w, status, report)
}

// ErrNotFound is returned when a resource referenced by an API request
// does not exist.
var ErrNotFound = errors.New("not found")

// ErrBadRequest is returned when a request fails validation.
var ErrBadRequest = errors.New("bad request")

// ErrInternalServerError is returned for unexpected server-side failures.
var ErrInternalServerError = errors.New("internal server error")
