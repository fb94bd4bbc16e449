// Package lru implements least-recently-used eviction: every Get and
// updating Set promotes the entry to the most-recently-used end; eviction
// always takes the entry at the least-recently-used end.
package lru

import (
	"github.com/gopherlru/evictcache/internal/list"
	"github.com/gopherlru/evictcache/internal/node"
	"github.com/gopherlru/evictcache/internal/pool"
	"github.com/gopherlru/evictcache/internal/store"
	"github.com/gopherlru/evictcache/policy"
)

type meta = struct{}

// Engine is the LRU policy.Engine. The head of order is the
// most-recently-used entry; the tail is the eviction candidate.
type Engine[K comparable, V any] struct {
	cfg   policy.Config[K, V]
	pool  *pool.Pool[K, V, meta]
	store *store.Map[K, V, meta]
	order list.List[K, V, meta]
}

// New constructs an LRU policy.Engine.
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

// Get returns k's value and promotes it to most-recently-used.
func (e *Engine[K, V]) Get(k K, h uint64) (V, bool) {
	n, ok := e.store.Get(k, h)
	if !ok {
		var zero V
		return zero, false
	}
	if e.expired(n, e.cfg.Clock.NowMillis()) {
		e.evictNode(n, policy.EvictTTL)
		var zero V
		return zero, false
	}
	e.order.MoveToFront(n)
	return n.Val, true
}

// Set inserts or updates k, promoting it to most-recently-used. Admitting a
// new key evicts the current least-recently-used entry if capacity is
// already at its limit.
func (e *Engine[K, V]) Set(k K, v V, expireAt int64, h uint64) {
	if n, ok := e.store.Get(k, h); ok {
		n.Val = v
		n.Expire = expireAt
		e.order.MoveToFront(n)
		return
	}
	for e.store.Len() >= e.cfg.Capacity {
		victim := e.order.Back()
		if victim == nil {
			break
		}
		e.evictNode(victim, policy.EvictCapacity)
	}
	n := e.store.Acquire(k)
	n.Val = v
	n.Expire = expireAt
	e.order.Prepend(n)
}

// Remove deletes k if present.
func (e *Engine[K, V]) Remove(k K, h uint64) bool {
	n, ok := e.store.Get(k, h)
	if !ok {
		return false
	}
	e.order.Remove(n)
	e.store.Remove(k, h)
	return true
}

// Contains reports liveness without promoting k.
func (e *Engine[K, V]) Contains(k K, h uint64) bool {
	n, ok := e.store.Get(k, h)
	if !ok {
		return false
	}
	return !e.expired(n, e.cfg.Clock.NowMillis())
}

// Count returns the number of live entries.
func (e *Engine[K, V]) Count() int { return e.store.Len() }
