// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package log_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	vlog "github.com/contentscore/validator/log"
)

func TestNewWritesWithoutPanicking(t *testing.T) {
	logger := vlog.New("")
	require.NotPanics(t, func() {
		logger.Info("hello", "key", "value")
		logger.With("component", "test").Warn("careful")
	})
}

func TestNewWithLogFileRotates(t *testing.T) {
	dir := t.TempDir()
	logger := vlog.New(filepath.Join(dir, "validator.log"))
	require.NotPanics(t, func() {
		logger.Debug("starting up")
		logger.Error("something failed", "err", "boom")
	})
}

func TestDiscardIsSilent(t *testing.T) {
	logger := vlog.Discard()
	require.NotPanics(t, func() {
		logger.Info("nothing happens")
	})
}
