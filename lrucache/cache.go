/*
Package lrucache provides a size-bounded NodeCache, answering the core
spec's explicit invitation (spec.md §9, "Unbounded growth") to plug in an
eviction strategy without touching the tree itself.

Grounded on vechain/thor's cache/lru.go (LRU wrapping *lru.Cache, NewLRU
clamping a minimum size), adapted here to the NodeCache.Spawn contract: each
spawned instance gets its own lru.Cache of the same configured size, rather
than sharing the prototype's.
*/
package lrucache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/go-cftree/filtertree"
)

const minSize = 16

// Cache is a NodeCache backed by a fixed-capacity LRU. Once full, inserting
// a new fingerprint evicts the least recently used entry.
//
// lru.Cache already guards its own internal map, but Get-then-Add is not
// atomic across two separate calls into it; putMu serializes Put so two
// concurrent builders racing on the same key still resolve to exactly one
// durable winner, as the NodeCache contract requires.
type Cache[O comparable, I any] struct {
	size  int
	lru   *lru.Cache
	putMu sync.Mutex
}

// New returns a Cache holding at most size entries (clamped to a minimum of
// 16, mirroring vechain/thor's NewLRU).
func New[O comparable, I any](size int) *Cache[O, I] {
	if size < minSize {
		size = minSize
	}
	c, err := lru.New(size)
	if err != nil {
		// lru.New only fails for size <= 0, which the clamp above rules out.
		panic(err)
	}
	return &Cache[O, I]{size: size, lru: c}
}

// Spawn returns a fresh, empty Cache of the same configured size.
func (c *Cache[O, I]) Spawn() filtertree.NodeCache[O, I] {
	return New[O, I](c.size)
}

// Get looks up the child Node materialized for fingerprint key.
func (c *Cache[O, I]) Get(key any) (*filtertree.Node[O, I], bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		return nil, false
	}
	return v.(*filtertree.Node[O, I]), true
}

// Put inserts node under key using insert-if-absent semantics, consistent
// with the NodeCache contract: if key is already present the incumbent
// wins and node is discarded, even though the underlying LRU would
// otherwise happily overwrite it (overwriting would let a losing builder's
// node become durable, violating at-most-one-durable-build-per-fingerprint).
func (c *Cache[O, I]) Put(key any, node *filtertree.Node[O, I]) *filtertree.Node[O, I] {
	c.putMu.Lock()
	defer c.putMu.Unlock()
	if v, ok := c.lru.Get(key); ok {
		return v.(*filtertree.Node[O, I])
	}
	c.lru.Add(key, node)
	return node
}

// Len reports how many fingerprints currently have a materialized child.
func (c *Cache[O, I]) Len() int {
	return c.lru.Len()
}

// Entries returns a point-in-time snapshot of the cache's contents, for
// diagnostics (see filtertree.Snapshot). Reading it does not affect LRU
// recency, unlike Get.
func (c *Cache[O, I]) Entries() map[any]*filtertree.Node[O, I] {
	out := make(map[any]*filtertree.Node[O, I], c.lru.Len())
	for _, key := range c.lru.Keys() {
		if v, ok := c.lru.Peek(key); ok {
			out[key] = v.(*filtertree.Node[O, I])
		}
	}
	return out
}
