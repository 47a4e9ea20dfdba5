// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package submission_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contentscore/validator/submission"
)

func TestHTTPGistFetcherFetchesRawContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/alice/abcd/raw", r.URL.Path)
		_, _ = w.Write([]byte(`{"content_id":"v1","platform":"yt/video"}`))
	}))
	defer srv.Close()

	fetcher := submission.NewHTTPGistFetcher(srv.URL, srv.Client())
	content, err := fetcher.FetchGist(context.Background(), "alice", "abcd")
	require.NoError(t, err)
	require.Contains(t, content, "v1")
}

func TestHTTPGistFetcherNon200IsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	fetcher := submission.NewHTTPGistFetcher(srv.URL, srv.Client())
	_, err := fetcher.FetchGist(context.Background(), "alice", "missing")
	require.Error(t, err)
}
