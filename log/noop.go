// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package log

import (
	"github.com/luxfi/log"
)

// Discard returns a logger that drops everything written to it, for tests
// and tools that don't care about log output.
func Discard() log.Logger {
	return log.NewNoOpLogger()
}