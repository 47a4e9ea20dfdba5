// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package chainadapter

import "github.com/cockroachdb/errors"

// ErrChainUnavailable wraps any transport-level failure talking to the
// chain RPC adapter. Callers skip the affected cycle; the next cycle
// retries from scratch (spec: no retries within a cycle).
var ErrChainUnavailable = errors.New("chainadapter: chain unavailable")

// ErrInvalidPublishRequest is returned by PublishWeights when the caller's
// own preconditions are violated (mismatched slice lengths or a zero sum)
// before any RPC is attempted. Uid membership is not checked.
var ErrInvalidPublishRequest = errors.New("chainadapter: invalid publish request")
