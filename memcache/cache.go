/*
Package memcache provides the reference NodeCache implementation: an
unbounded, thread-safe in-memory map from fingerprint to materialized Node.

It has no eviction policy — production deployments that need one should
plug in a bounded implementation instead (see the sibling lrucache package).
The contract only requires that a Get which returned a node never later
return a different node for the same key without an intervening Put race,
and that is exactly what the insert-if-absent Put below guarantees.

Grounded on openconfig/ygot's ytypes.NodeCache (a mutex-guarded map used as
a config-tree traversal fast path) for the mutex+map shape, and on the
teacher's childrenSlice (tree/node.go) for the RWMutex locking discipline.
*/
package memcache

import (
	"sync"

	"github.com/go-cftree/filtertree"
)

// Cache is the reference in-memory NodeCache. The zero value is not usable;
// construct one with New.
type Cache[O comparable, I any] struct {
	mu   sync.RWMutex
	data map[any]*filtertree.Node[O, I]
}

// New returns a fresh, empty Cache. Use it directly as a Step's cache
// prototype — the tree will call Spawn on it per node, never this instance
// itself.
func New[O comparable, I any]() *Cache[O, I] {
	return &Cache[O, I]{data: make(map[any]*filtertree.Node[O, I])}
}

// Spawn returns a fresh, empty Cache, independent of the receiver.
func (c *Cache[O, I]) Spawn() filtertree.NodeCache[O, I] {
	return New[O, I]()
}

// Get looks up the child Node materialized for fingerprint key.
func (c *Cache[O, I]) Get(key any) (*filtertree.Node[O, I], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n, ok := c.data[key]
	return n, ok
}

// Put inserts node under key using insert-if-absent semantics. If another
// goroutine already installed a node under key, that incumbent is returned
// and node is discarded.
func (c *Cache[O, I]) Put(key any, node *filtertree.Node[O, I]) *filtertree.Node[O, I] {
	c.mu.RLock()
	if incumbent, ok := c.data[key]; ok {
		c.mu.RUnlock()
		return incumbent
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if incumbent, ok := c.data[key]; ok {
		return incumbent
	}
	c.data[key] = node
	return node
}

// Len reports how many fingerprints currently have a materialized child.
func (c *Cache[O, I]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Entries returns a point-in-time snapshot of the cache's contents, for
// diagnostics (see filtertree.Snapshot). The returned map is a copy; the
// cache may keep changing after Entries returns.
func (c *Cache[O, I]) Entries() map[any]*filtertree.Node[O, I] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[any]*filtertree.Node[O, I], len(c.data))
	for k, v := range c.data {
		out[k] = v
	}
	return out
}
