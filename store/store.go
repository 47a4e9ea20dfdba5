// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"github.com/cockroachdb/errors"
	"github.com/luxfi/database"

	"github.com/contentscore/validator/ids"
	"github.com/contentscore/validator/metricclient"
	"github.com/contentscore/validator/submission"
)

// Store implements the Performance Store contract of §4.4 over an
// ordered key-value Database: two independently keyed tables — a
// submissions table keyed by hotkey, and a performance table keyed by
// (hotkey, content_id) — with no back-pointer between them.
type Store struct {
	db Database
}

// New wraps db as a Store.
func New(db Database) *Store {
	return &Store{db: db}
}

// ReplacePeerSubmissions implements replace_peer_submissions: the peer's
// entire submission set is replaced wholesale. An empty list deletes the
// record rather than storing an empty one, keeping LoadSubmissionsTouching's
// iteration free of dead entries.
func (s *Store) ReplacePeerSubmissions(hotkey ids.Hotkey, subs []submission.Submission) error {
	key := submissionsKey(hotkey)
	if len(subs) == 0 {
		return s.db.Delete(key)
	}
	raw, err := encodeSubmissions(subs)
	if err != nil {
		return errors.Wrapf(err, "store: encode submissions for %s", hotkey)
	}
	return s.db.Put(key, raw)
}

// LoadSubmissionsTouching implements load_submissions_touching: it scans
// every persisted submissions record and returns the subset of peers whose
// set intersects contentIDs.
func (s *Store) LoadSubmissionsTouching(contentIDs map[ids.ContentID]struct{}) (map[ids.Hotkey][]submission.Submission, error) {
	out := make(map[ids.Hotkey][]submission.Submission)

	it := s.db.NewIteratorWithPrefix([]byte(submissionsPrefix))
	defer it.Release()

	for it.Next() {
		hotkey := hotkeyFromSubmissionsKey(it.Key())
		subs, err := decodeSubmissions(it.Value())
		if err != nil {
			return nil, errors.Wrapf(ErrCorruptRecord, "store: decode submissions for %s: %v", hotkey, err)
		}

		var touching []submission.Submission
		for _, sub := range subs {
			if _, ok := contentIDs[sub.ContentID]; ok {
				touching = append(touching, sub)
			}
		}
		if len(touching) > 0 {
			out[hotkey] = touching
		}
	}
	if err := it.Error(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertPerformance implements upsert_performance: it replaces the entire
// Performance document for (hotkey, content_id). Callers perform the
// read-modify-write (via GetPerformance) themselves; this call is the
// write half only, matching §4.4's contract.
func (s *Store) UpsertPerformance(p Performance) error {
	raw, err := encodePerformance(p)
	if err != nil {
		return errors.Wrapf(err, "store: encode performance for %s", p.Key())
	}
	return s.db.Put(performanceKey(p.Key()), raw)
}

// GetPerformance returns the current Performance document for key. When
// none exists yet it returns a fresh, empty-series Performance alongside
// ErrPerformanceNotFound — the natural starting point for the
// read-modify-write upsert cycle on first observation of a pair.
func (s *Store) GetPerformance(key ids.PerformanceKey) (Performance, error) {
	fresh := Performance{
		Hotkey:    key.Hotkey,
		ContentID: key.ContentID,
		Series:    make(map[ids.IntervalKey]metricclient.Metric),
	}

	raw, err := s.db.Get(performanceKey(key))
	if errors.Is(err, database.ErrNotFound) {
		return fresh, ErrPerformanceNotFound
	}
	if err != nil {
		return Performance{}, err
	}
	return decodePerformance(raw)
}

// IterPerformances implements iter_performances: it walks every persisted
// Performance document and invokes fn for each, stopping on the first
// error fn returns.
func (s *Store) IterPerformances(fn func(Performance) error) error {
	it := s.db.NewIteratorWithPrefix([]byte(performancePrefix))
	defer it.Release()

	for it.Next() {
		p, err := decodePerformance(it.Value())
		if err != nil {
			return errors.Wrap(ErrCorruptRecord, err.Error())
		}
		if err := fn(p); err != nil {
			return err
		}
	}
	return it.Error()
}
