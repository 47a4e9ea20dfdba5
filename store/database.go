// Copyright (C) 2025, Content Score Contributors. All rights reserved.
// See the file LICENSE for licensing terms.

// Package store implements the document/KV-backed Performance Store named
// in §4.4: it owns two tables indexed by hotkey and (hotkey, content_id)
// with no cyclic back-pointers, via a generic ordered key-value Database
// interface so the engine is swappable between the in-process default and
// a real embedded store without touching this package's logic.
package store

import (
	"bytes"
	"sort"
	"sync"

	"github.com/luxfi/database"
)

// Iterator walks a key range in lexicographic order. Callers must call
// Release when done.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Error() error
	Release()
}

// Database is the narrow ordered-KV contract the store needs: Get/Put/
// Delete from the teacher's database.Reader/Writer idiom, plus prefix
// iteration for the submissions and performance tables.
type Database interface {
	database.Database
	NewIteratorWithPrefix(prefix []byte) Iterator
}

// MemDatabase is the zero-config, in-process default: a mutex-guarded
// sorted map, the same shape as the teacher's chains/atomic.Memory and
// uptime.TestState in-process doubles.
type MemDatabase struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemDatabase returns an empty in-process Database.
func NewMemDatabase() *MemDatabase {
	return &MemDatabase{data: make(map[string][]byte)}
}

func (m *MemDatabase) Has(key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[string(key)]
	return ok, nil
}

func (m *MemDatabase) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemDatabase) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[string(key)] = v
	return nil
}

func (m *MemDatabase) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *MemDatabase) Close() error { return nil }

func (m *MemDatabase) NewBatch() database.Batch {
	return &memBatch{db: m}
}

func (m *MemDatabase) NewIteratorWithPrefix(prefix []byte) Iterator {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var keys []string
	for k := range m.data {
		if bytes.HasPrefix([]byte(k), prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	snapshot := make(map[string][]byte, len(keys))
	for _, k := range keys {
		snapshot[k] = m.data[k]
	}

	return &memIterator{keys: keys, snapshot: snapshot, cur: -1}
}

type memIterator struct {
	keys     []string
	snapshot map[string][]byte
	cur      int
}

func (it *memIterator) Next() bool {
	it.cur++
	return it.cur < len(it.keys)
}

func (it *memIterator) Key() []byte   { return []byte(it.keys[it.cur]) }
func (it *memIterator) Value() []byte { return it.snapshot[it.keys[it.cur]] }
func (it *memIterator) Error() error  { return nil }
func (it *memIterator) Release()      {}

// memOp is one queued batch operation.
type memOp struct {
	key    []byte
	value  []byte
	delete bool
}

type memBatch struct {
	db  *MemDatabase
	ops []memOp
	n   int
}

func (b *memBatch) Put(key, value []byte) error {
	b.ops = append(b.ops, memOp{key: key, value: value})
	b.n += len(key) + len(value)
	return nil
}

func (b *memBatch) Delete(key []byte) error {
	b.ops = append(b.ops, memOp{key: key, delete: true})
	b.n += len(key)
	return nil
}

func (b *memBatch) Size() int { return b.n }

func (b *memBatch) Write() error {
	for _, op := range b.ops {
		if op.delete {
			if err := b.db.Delete(op.key); err != nil {
				return err
			}
			continue
		}
		if err := b.db.Put(op.key, op.value); err != nil {
			return err
		}
	}
	return nil
}

func (b *memBatch) Reset() {
	b.ops = nil
	b.n = 0
}

func (b *memBatch) Replay(w database.Writer) error {
	for _, op := range b.ops {
		if op.delete {
			if err := w.Delete(op.key); err != nil {
				return err
			}
			continue
		}
		if err := w.Put(op.key, op.value); err != nil {
			return err
		}
	}
	return nil
}
