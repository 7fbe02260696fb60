// Licensed to the HiCR authors under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. The HiCR authors license this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package finishedset implements the scheduler's finished-set: a
// concurrent, monotonic set of task labels, sharded across independent
// mutex-guarded maps so that readiness scans from many workers don't
// serialize on one lock. Shard routing uses a jump-consistent hash of
// the label, the same distribution scheme the rest of this codebase
// reaches for when it needs to route a key to one of N shards.
package finishedset

import (
	"sync"

	jump "github.com/lithammer/go-jump-consistent-hash"
)

const defaultShards = 32

// Set is a concurrent hash set of uint64 labels. Insertion is the only
// mutation: for the lifetime of a run, labels are never removed.
type Set struct {
	shards []shard
	n      int32
}

type shard struct {
	mu   sync.RWMutex
	data map[uint64]struct{}
}

// New returns an empty Set with the default shard count.
func New() *Set {
	return NewWithShards(defaultShards)
}

// NewWithShards returns an empty Set sharded across n buckets.
func NewWithShards(n int) *Set {
	if n < 1 {
		n = 1
	}
	s := &Set{shards: make([]shard, n), n: int32(n)}
	for i := range s.shards {
		s.shards[i].data = make(map[uint64]struct{})
	}
	return s
}

func (s *Set) shardFor(label uint64) *shard {
	idx := jump.Hash(label, s.n)
	return &s.shards[idx]
}

// Insert adds label to the set. Inserting an already-present label is a
// no-op: this keeps markFinished idempotent if ever called twice for the
// same label (the scheduler itself only calls it once per task, but the
// set does not rely on that to stay correct).
func (s *Set) Insert(label uint64) {
	sh := s.shardFor(label)
	sh.mu.Lock()
	sh.data[label] = struct{}{}
	sh.mu.Unlock()
}

// Contains reports whether label has been inserted.
func (s *Set) Contains(label uint64) bool {
	sh := s.shardFor(label)
	sh.mu.RLock()
	_, ok := sh.data[label]
	sh.mu.RUnlock()
	return ok
}

// Len returns the number of distinct labels inserted so far. It locks
// every shard in turn and is meant for diagnostics, not hot paths.
func (s *Set) Len() int {
	total := 0
	for i := range s.shards {
		s.shards[i].mu.RLock()
		total += len(s.shards[i].data)
		s.shards[i].mu.RUnlock()
	}
	return total
}
