// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package chainadapter reads per-peer commitments and metagraph state from
// the chain RPC adapter and publishes normalized weight vectors back to it.
// It holds no local persistence; the chain is the sole source of truth for
// everything it returns.
package chainadapter

import "github.com/contentscore/validator/ids"

// Peer is one row of the chain's metagraph for a netuid: a uid, its
// hotkey, and whatever commitment string that hotkey has published.
// Peer is derived fresh every cycle and never persisted as authoritative.
type Peer struct {
	UID        ids.UID
	Hotkey     ids.Hotkey
	Commitment string
	Stake      uint64
	IsValidator bool
}

// Active reports whether this peer counts toward engagement-rate scoring:
// it must hold stake and must not itself be a validator (spec §4.5.2).
func (p Peer) Active() bool {
	return p.Stake > 0 && !p.IsValidator
}

// MetagraphSnapshot is the full per-netuid chain state read at the start
// of a reconcile iteration. It is immutable once built; the orchestrator
// hands it to the publish loop by reference, never by mutation.
type MetagraphSnapshot struct {
	Netuid uint16
	Peers  []Peer
}

// Ack is the chain RPC library's response to a weight publication.
type Ack struct {
	OK   bool
	Info string
}
