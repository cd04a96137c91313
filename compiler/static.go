// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compiler

import (
	"sync"
	"sync/atomic"

	"github.com/routecore/routecore/route"
)

// minRoutesForBloom is the static-table size below which the bloom
// filter is skipped: at small counts the map lookup is cheaper than
// computing the filter's hash positions.
const minRoutesForBloom = 10

// StaticTable is the exact segment-tuple lookup for routes with no
// dynamic segments and no requirements. Lookup bypasses its mutex
// once Freeze has been called, since Finalize makes the registry
// immutable for the rest of the router's life.
type StaticTable struct {
	mu     sync.RWMutex
	frozen atomic.Bool
	groups map[route.Key]*route.Group
	bloom  *BloomFilter
}

// NewStaticTable returns an empty, unfrozen table.
func NewStaticTable() *StaticTable {
	return &StaticTable{groups: make(map[route.Key]*route.Group, 64)}
}

// Put inserts or replaces the group at its segment-tuple key.
func (t *StaticTable) Put(g *route.Group) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.groups[route.SegmentKey(g.Segments)] = g
}

// Delete removes the group stored under key, if any.
func (t *StaticTable) Delete(key route.Key) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.groups, key)
}

// Get returns the group registered at key without engaging the bloom
// filter or the frozen fast path, for use by build-time cross-
// registry promotion.
func (t *StaticTable) Get(key route.Key) (*route.Group, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	g, ok := t.groups[key]
	return g, ok
}

// Len reports the number of registered groups.
func (t *StaticTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.groups)
}

// Freeze builds the bloom filter (when the table is large enough to
// benefit) and switches Lookup onto its lock-free fast path.
func (t *StaticTable) Freeze(bloomSize uint64, numHashFuncs int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.groups) >= minRoutesForBloom {
		size := bloomSize
		if size == 0 {
			size = uint64(len(t.groups)*8 + 64)
		}
		if numHashFuncs <= 0 {
			numHashFuncs = 3
		}
		bf := NewBloomFilter(size, numHashFuncs)
		for k := range t.groups {
			bf.Add([]byte(k))
		}
		t.bloom = bf
	}
	t.frozen.Store(true)
}

// Lookup finds the group registered under key.
func (t *StaticTable) Lookup(key route.Key) (*route.Group, bool) {
	frozen := t.frozen.Load()
	if !frozen {
		t.mu.RLock()
		defer t.mu.RUnlock()
	}

	if len(t.groups) == 0 {
		return nil, false
	}
	if t.bloom != nil && !t.bloom.Test([]byte(key)) {
		return nil, false
	}
	g, ok := t.groups[key]
	return g, ok
}
