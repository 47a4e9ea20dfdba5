// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package chainadapter

import "github.com/contentscore/validator/ids"

// Index is an immutable uid<->hotkey lookup built from one
// MetagraphSnapshot. The reconcile loop builds a new Index every
// iteration and hands the pointer to the publish loop; neither loop ever
// mutates an Index in place, so the publish loop can read a stale-but-
// consistent copy without coordinating with an in-flight reconcile
// (spec §5, "copy-on-write").
type Index struct {
	snapshot    MetagraphSnapshot
	byHotkey    map[ids.Hotkey]Peer
	byUID       map[ids.UID]Peer
}

// NewIndex builds an Index from a snapshot. Duplicate hotkeys or uids in
// the snapshot are not expected from a well-formed metagraph; the later
// entry wins.
func NewIndex(snapshot MetagraphSnapshot) *Index {
	idx := &Index{
		snapshot: snapshot,
		byHotkey: make(map[ids.Hotkey]Peer, len(snapshot.Peers)),
		byUID:    make(map[ids.UID]Peer, len(snapshot.Peers)),
	}
	for _, p := range snapshot.Peers {
		idx.byHotkey[p.Hotkey] = p
		idx.byUID[p.UID] = p
	}
	return idx
}

// Snapshot returns the MetagraphSnapshot this Index was built from.
func (idx *Index) Snapshot() MetagraphSnapshot { return idx.snapshot }

// PeerByHotkey looks up a peer by hotkey.
func (idx *Index) PeerByHotkey(hotkey ids.Hotkey) (Peer, bool) {
	p, ok := idx.byHotkey[hotkey]
	return p, ok
}

// PeerByUID looks up a peer by uid.
func (idx *Index) PeerByUID(uid ids.UID) (Peer, bool) {
	p, ok := idx.byUID[uid]
	return p, ok
}

// Contains reports whether hotkey is a member of the current metagraph.
func (idx *Index) Contains(hotkey ids.Hotkey) bool {
	_, ok := idx.byHotkey[hotkey]
	return ok
}

// ActiveHotkeys returns every hotkey eligible for engagement-rate scoring
// (stake > 0, not a validator).
func (idx *Index) ActiveHotkeys() []ids.Hotkey {
	out := make([]ids.Hotkey, 0, len(idx.byHotkey))
	for hotkey, p := range idx.byHotkey {
		if p.Active() {
			out = append(out, hotkey)
		}
	}
	return out
}

// UIDs returns every uid currently in the metagraph, in no particular
// order; callers that need a stable weight-vector ordering should sort it.
func (idx *Index) UIDs() []ids.UID {
	out := make([]ids.UID, 0, len(idx.byUID))
	for uid := range idx.byUID {
		out = append(out, uid)
	}
	return out
}
