// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package chainadapter

import (
	"context"

	"github.com/contentscore/validator/ids"
)

// Adapter is the chain RPC contract the orchestrator drives. It is the
// out-of-scope chain RPC library's entry point (spec §4.1, §6.6); this
// package only shapes the calls and classifies the responses.
type Adapter interface {
	// FetchPeers returns the current metagraph for netuid: every uid's
	// hotkey, stake, validator flag, and raw commitment string. Returns
	// ErrChainUnavailable on transport failure; callers skip the cycle.
	FetchPeers(ctx context.Context, netuid uint16) (MetagraphSnapshot, error)

	// PublishWeights publishes an integer weight vector. The preconditions
	// len(uids) == len(weights) and sum(weights) > 0 are checked locally and
	// reported as ErrInvalidPublishRequest before any RPC is attempted;
	// whether each uid is in the metagraph is not checked here. A transport
	// failure returns ErrChainUnavailable
	// and the caller retries from scratch on the next publish cycle.
	PublishWeights(ctx context.Context, netuid uint16, uids []ids.UID, weights []uint16, versionKey uint32) (Ack, error)
}
