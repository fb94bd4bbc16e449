// Package sieve implements the SIEVE eviction policy: a single list in
// insertion order, plus a "hand" cursor that separates eviction order from
// insertion order. Each entry carries one visited bit, set on every hit and
// cleared as the hand sweeps past it looking for an eviction victim.
//
// Built directly from the algorithm's description, following the same
// list and Node conventions as policy/lru (newest at head, prepend-on-insert,
// intrusive links shared with the pool).
package sieve

import (
	"github.com/gopherlru/evictcache/internal/list"
	"github.com/gopherlru/evictcache/internal/node"
	"github.com/gopherlru/evictcache/internal/pool"
	"github.com/gopherlru/evictcache/internal/store"
	"github.com/gopherlru/evictcache/policy"
)

type meta struct {
	Visited bool
}

// Engine is the SIEVE policy.Engine. order.Front() is the most recently
// admitted entry; hand sweeps from the tail toward the head looking for an
// unvisited victim. A nil hand means "start from the current tail", which
// also implements the spec's "wrap to tail when the hand falls off the
// head" rule without needing an explicit wrap flag.
type Engine[K comparable, V any] struct {
	cfg   policy.Config[K, V]
	pool  *pool.Pool[K, V, meta]
	store *store.Map[K, V, meta]
	order list.List[K, V, meta]
	hand  *node.Node[K, V, meta]
}

// New constructs a SIEVE policy.Engine.
func New[K comparable, V any](cfg policy.Config[K, V]) policy.Engine[K, V] {
	p := pool.New[K, V, meta](cfg.PoolSize)
	return &Engine[K, V]{
		cfg:   cfg,
		pool:  p,
		store: store.New[K, V, meta](cfg.Capacity, p),
	}
}

func (e *Engine[K, V]) expired(n *node.Node[K, V, meta], now int64) bool {
	return n.Expire != 0 && n.Expire <= now
}

func (e *Engine[K, V]) evictNode(n *node.Node[K, V, meta], reason policy.EvictReason) {
	e.order.Remove(n)
	k, v := n.Key, n.Val
	e.store.Remove(k, 0)
	if e.cfg.OnEvict != nil {
		e.cfg.OnEvict(k, v, reason)
	}
}

// sweep advances the hand toward the head, clearing visited bits, until it
// finds an unvisited node, and returns that node as the eviction victim.
// Returns nil only if the list is empty.
func (e *Engine[K, V]) sweep() *node.Node[K, V, meta] {
	hand := e.hand
	if hand == nil {
		hand = e.order.Back()
	}
	for hand != nil && hand.Meta.Visited {
		hand.Meta.Visited = false
		prev := hand.Prev
		if prev == nil {
			prev = e.order.Back() // fell off the head: wrap to tail
		}
		hand = prev
	}
	return hand
}

// Get returns k's value, marking it visited on a hit without moving it.
func (e *Engine[K, V]) Get(k K, h uint64) (V, bool) {
	n, ok := e.store.Get(k, h)
	if !ok {
		var zero V
		return zero, false
	}
	if e.expired(n, e.cfg.Clock.NowMillis()) {
		if e.hand == n {
			e.hand = n.Prev
		}
		e.evictNode(n, policy.EvictTTL)
		var zero V
		return zero, false
	}
	n.Meta.Visited = true
	return n.Val, true
}

// Set inserts or updates k. Admitting a new key when the cache is full
// sweeps the hand for a victim before prepending the new node at the head.
func (e *Engine[K, V]) Set(k K, v V, expireAt int64, h uint64) {
	if n, ok := e.store.Get(k, h); ok {
		n.Val = v
		n.Expire = expireAt
		return
	}
	for e.store.Len() >= e.cfg.Capacity {
		victim := e.sweep()
		if victim == nil {
			break
		}
		e.hand = victim.Prev // wherever sweep left off, not just where it started
		e.evictNode(victim, policy.EvictCapacity)
	}
	n := e.store.Acquire(k)
	n.Val = v
	n.Expire = expireAt
	n.Meta.Visited = false
	e.order.Prepend(n)
}

// Remove deletes k if present.
func (e *Engine[K, V]) Remove(k K, h uint64) bool {
	n, ok := e.store.Get(k, h)
	if !ok {
		return false
	}
	if e.hand == n {
		e.hand = n.Prev
	}
	e.order.Remove(n)
	e.store.Remove(k, h)
	return true
}

// Contains reports liveness without setting the visited bit.
func (e *Engine[K, V]) Contains(k K, h uint64) bool {
	n, ok := e.store.Get(k, h)
	if !ok {
		return false
	}
	return !e.expired(n, e.cfg.Clock.NowMillis())
}

// Count returns the number of live entries.
func (e *Engine[K, V]) Count() int { return e.store.Len() }
