// Package fifo implements the plain FIFO eviction policy: entries leave in
// exactly the order they were admitted, regardless of how often they are
// read. There is no MRU promotion on access since FIFO never reorders.
package fifo

import (
	"github.com/gopherlru/evictcache/internal/list"
	"github.com/gopherlru/evictcache/internal/node"
	"github.com/gopherlru/evictcache/internal/pool"
	"github.com/gopherlru/evictcache/internal/store"
	"github.com/gopherlru/evictcache/policy"
)

// meta carries no per-node state; FIFO needs nothing beyond the shared
// Node fields.
type meta = struct{}

// Engine is the FIFO policy.Engine. New entries link at the tail; eviction
// always takes the head, the oldest surviving entry.
type Engine[K comparable, V any] struct {
	cfg   policy.Config[K, V]
	pool  *pool.Pool[K, V, meta]
	store *store.Map[K, V, meta]
	order list.List[K, V, meta]
}

// New constructs a FIFO policy.Engine.
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

// Get returns k's value without reordering the FIFO queue.
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
	return n.Val, true
}

// Set inserts or updates k, evicting the oldest entry when admitting a new
// key would exceed capacity.
func (e *Engine[K, V]) Set(k K, v V, expireAt int64, h uint64) {
	if n, ok := e.store.Get(k, h); ok {
		n.Val = v
		n.Expire = expireAt
		return
	}
	for e.store.Len() >= e.cfg.Capacity {
		victim := e.order.Front()
		if victim == nil {
			break
		}
		e.evictNode(victim, policy.EvictCapacity)
	}
	n := e.store.Acquire(k)
	n.Val = v
	n.Expire = expireAt
	e.order.Append(n)
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

// Contains reports liveness without treating the call as an access.
func (e *Engine[K, V]) Contains(k K, h uint64) bool {
	n, ok := e.store.Get(k, h)
	if !ok {
		return false
	}
	return !e.expired(n, e.cfg.Clock.NowMillis())
}

// Count returns the number of live entries.
func (e *Engine[K, V]) Count() int { return e.store.Len() }
