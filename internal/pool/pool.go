// Package pool implements the bounded, preallocated Node reservoir every
// policy acquires its storage from: a fixed arena plus a free list,
// heap-allocating past the arena rather than failing, and never growing
// back past the configured size on release.
package pool

import "github.com/gopherlru/evictcache/internal/node"

// Pool hands out *node.Node[K, V, M] values backed by a preallocated arena
// of size cap. Acquire/Release are not safe for concurrent use; callers
// (the policy engines) run under their shard's lock.
type Pool[K comparable, V any, M any] struct {
	arena []node.Node[K, V, M]
	free  []*node.Node[K, V, M]
	cap   int
}

// New preallocates size nodes. size <= 0 means "no preallocation": every
// Acquire heap-allocates and every Release simply drops the reference for
// the GC to reclaim.
func New[K comparable, V any, M any](size int) *Pool[K, V, M] {
	p := &Pool[K, V, M]{cap: size}
	if size <= 0 {
		return p
	}
	p.arena = make([]node.Node[K, V, M], size)
	p.free = make([]*node.Node[K, V, M], size)
	for i := range p.arena {
		p.free[i] = &p.arena[i]
	}
	return p
}

// Acquire returns a node from the free list, or heap-allocates a fresh one
// when the free list is empty.
func (p *Pool[K, V, M]) Acquire() *node.Node[K, V, M] {
	if n := len(p.free); n > 0 {
		nd := p.free[n-1]
		p.free = p.free[:n-1]
		return nd
	}
	return &node.Node[K, V, M]{}
}

// Release returns n to the free list if there is room under the configured
// size, otherwise drops it for the garbage collector. The caller must have
// already unlinked n from every list and removed it from the map; Release
// only clears payload state.
func (p *Pool[K, V, M]) Release(n *node.Node[K, V, M]) {
	n.Reset()
	if len(p.free) < p.cap {
		p.free = append(p.free, n)
	}
}
