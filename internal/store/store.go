// Package store implements the Map component: the key-indexed lookup table
// every policy consults before falling back to its lists. It owns a
// pool.Pool so that acquiring and indexing a new node happen together, and
// accepts a precomputed hash alongside every key so callers never hash a
// key twice.
//
// Go's builtin map recomputes a key's hash internally regardless of what the
// caller passes in — there is no exported "insert with this hash" path in
// the runtime. The h parameter is accepted to keep every call site uniform
// across policies that do need the hash for other reasons (the CM-sketch in
// policy/tinylfu); store itself cannot make use of it.
package store

import (
	"github.com/gopherlru/evictcache/internal/node"
	"github.com/gopherlru/evictcache/internal/pool"
)

// Map is the Node index. Not safe for concurrent use; callers hold their
// shard's lock.
type Map[K comparable, V any, M any] struct {
	m    map[K]*node.Node[K, V, M]
	pool *pool.Pool[K, V, M]
}

// New builds a Map sized for capacity entries, backed by pool for Node
// storage.
func New[K comparable, V any, M any](capacity int, p *pool.Pool[K, V, M]) *Map[K, V, M] {
	if capacity < 0 {
		capacity = 0
	}
	return &Map[K, V, M]{
		m:    make(map[K]*node.Node[K, V, M], capacity),
		pool: p,
	}
}

// Get returns the node stored under k, if any. h is unused (see package
// doc) but kept in the signature for API parity with the rest of the policy
// call path.
func (s *Map[K, V, M]) Get(k K, h uint64) (*node.Node[K, V, M], bool) {
	n, ok := s.m[k]
	return n, ok
}

// Contains reports whether k is indexed.
func (s *Map[K, V, M]) Contains(k K, h uint64) bool {
	_, ok := s.m[k]
	return ok
}

// Acquire allocates a fresh node for k from the pool and indexes it. The
// caller must not call Acquire for a key already present; use Get first.
func (s *Map[K, V, M]) Acquire(k K) *node.Node[K, V, M] {
	n := s.pool.Acquire()
	n.Key = k
	s.m[k] = n
	return n
}

// Remove unindexes k and releases its node back to the pool. It does not
// unlink the node from any list — the caller must do that first.
func (s *Map[K, V, M]) Remove(k K, h uint64) (*node.Node[K, V, M], bool) {
	n, ok := s.m[k]
	if !ok {
		return nil, false
	}
	delete(s.m, k)
	s.pool.Release(n)
	return n, true
}

// Delete unindexes k without releasing its node, for callers that manage
// the node's lifetime themselves (ghost entries that still need their Key
// readable after removal from the live index).
func (s *Map[K, V, M]) Delete(k K) {
	delete(s.m, k)
}

// Len returns the number of indexed entries.
func (s *Map[K, V, M]) Len() int { return len(s.m) }
