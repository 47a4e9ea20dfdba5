// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package store

import (
	"encoding/json"

	"github.com/contentscore/validator/ids"
	"github.com/contentscore/validator/metricclient"
	"github.com/contentscore/validator/submission"
)

const (
	submissionsPrefix = "subs/"
	performancePrefix = "perf/"
)

func submissionsKey(hotkey ids.Hotkey) []byte {
	return []byte(submissionsPrefix + string(hotkey))
}

func performanceKey(key ids.PerformanceKey) []byte {
	return []byte(performancePrefix + string(key.Hotkey) + "/" + string(key.ContentID))
}

func hotkeyFromSubmissionsKey(key []byte) ids.Hotkey {
	return ids.Hotkey(string(key)[len(submissionsPrefix):])
}

// submissionRecord is the on-disk shape of a peer's submission set.
type submissionRecord struct {
	Submissions []submission.Submission `json:"submissions"`
}

func encodeSubmissions(subs []submission.Submission) ([]byte, error) {
	return json.Marshal(submissionRecord{Submissions: subs})
}

func decodeSubmissions(raw []byte) ([]submission.Submission, error) {
	var rec submissionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec.Submissions, nil
}

// Performance is the store's append-only per-(hotkey,content_id) interval
// series named in §4.4, keyed by hotkey and content id with no back
// references to the owning submissions record.
type Performance struct {
	Hotkey    ids.Hotkey
	ContentID ids.ContentID
	Series    map[ids.IntervalKey]metricclient.Metric
}

// Key returns the document's identity key.
func (p Performance) Key() ids.PerformanceKey {
	return ids.PerformanceKey{Hotkey: p.Hotkey, ContentID: p.ContentID}
}

// SortedIntervals returns the series' interval keys in ascending
// (chronological) order, relying on IntervalKey's lexicographic-sortable
// format rather than parsing timestamps.
func (p Performance) SortedIntervals() []ids.IntervalKey {
	out := make([]ids.IntervalKey, 0, len(p.Series))
	for k := range p.Series {
		out = append(out, k)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

type performanceRecord struct {
	Hotkey    ids.Hotkey                               `json:"hotkey"`
	ContentID ids.ContentID                             `json:"content_id"`
	Series    map[ids.IntervalKey]metricclient.Metric `json:"series"`
}

func encodePerformance(p Performance) ([]byte, error) {
	return json.Marshal(performanceRecord{Hotkey: p.Hotkey, ContentID: p.ContentID, Series: p.Series})
}

func decodePerformance(raw []byte) (Performance, error) {
	var rec performanceRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Performance{}, err
	}
	return Performance{Hotkey: rec.Hotkey, ContentID: rec.ContentID, Series: rec.Series}, nil
}
