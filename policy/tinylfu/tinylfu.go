// Package tinylfu implements the W-TinyLFU eviction policy: a small
// recency-biased Window admits new entries, a Count-Min Sketch estimates
// long-run frequency, and a segmented main cache (Probationary + Protected)
// holds everything the sketch judges worth keeping. The window -> probation
// -> protected admission flow is built against policy.Engine, with
// internal/sketch supplying the frequency estimate.
package tinylfu

import (
	"github.com/gopherlru/evictcache/internal/list"
	"github.com/gopherlru/evictcache/internal/node"
	"github.com/gopherlru/evictcache/internal/pool"
	"github.com/gopherlru/evictcache/internal/sketch"
	"github.com/gopherlru/evictcache/internal/store"
	"github.com/gopherlru/evictcache/internal/xhash"
	"github.com/gopherlru/evictcache/policy"
)

const (
	regionWindow uint8 = iota
	regionProbation
	regionProtected
)

type meta struct {
	Region uint8
}

// Engine is the W-TinyLFU policy.Engine.
type Engine[K comparable, V any] struct {
	cfg   policy.Config[K, V]
	pool  *pool.Pool[K, V, meta]
	store *store.Map[K, V, meta]

	window, probation, protected list.List[K, V, meta]
	sketch                       *sketch.CountMinSketch

	capW, capT, capP int
}

// New constructs a W-TinyLFU policy.Engine.
func New[K comparable, V any](cfg policy.Config[K, V]) policy.Engine[K, V] {
	capW := max1(cfg.Capacity * 1 / 100)
	rest := cfg.Capacity - capW
	capT := max1(rest * 80 / 100)
	capP := max1(rest - capT)

	poolSize := cfg.PoolSize
	if want := capW + capT + capP; poolSize < want {
		poolSize = want
	}
	p := pool.New[K, V, meta](poolSize)
	return &Engine[K, V]{
		cfg:    cfg,
		pool:   p,
		store:  store.New[K, V, meta](poolSize, p),
		sketch: sketch.New(cfg.Capacity),
		capW:   capW,
		capT:   capT,
		capP:   capP,
	}
}

func max1(x int) int {
	if x < 1 {
		return 1
	}
	return x
}

func (e *Engine[K, V]) expired(n *node.Node[K, V, meta], now int64) bool {
	return n.Expire != 0 && n.Expire <= now
}

func (e *Engine[K, V]) listFor(region uint8) *list.List[K, V, meta] {
	switch region {
	case regionWindow:
		return &e.window
	case regionProbation:
		return &e.probation
	default:
		return &e.protected
	}
}

func (e *Engine[K, V]) releaseNode(n *node.Node[K, V, meta], reason policy.EvictReason, report bool) {
	e.listFor(n.Meta.Region).Remove(n)
	k, v := n.Key, n.Val
	e.store.Remove(k, 0)
	if report && e.cfg.OnEvict != nil {
		e.cfg.OnEvict(k, v, reason)
	}
}

// onHit applies the region-specific promotion rule for an access that has
// already passed the TTL check. The caller (Get) has already incremented
// the sketch.
func (e *Engine[K, V]) onHit(n *node.Node[K, V, meta], h uint64) {
	switch n.Meta.Region {
	case regionWindow:
		e.window.MoveToBack(n)
	case regionProbation:
		e.probation.Remove(n)
		if e.protected.Len() >= e.capT {
			if head := e.protected.PopFront(); head != nil {
				head.Meta.Region = regionProbation
				e.probation.Append(head)
			}
		}
		n.Meta.Region = regionProtected
		e.protected.Append(n)
	case regionProtected:
		e.protected.MoveToBack(n)
	}
}

// admitToMain runs the main-cache admission contest for a Window victim
// evicted from the front of the Window list. The contest compares the
// candidate's own frequency estimate against the Probationary incumbent's,
// so it hashes c.Key itself rather than trusting a caller-supplied hash
// that may belong to a different key (e.g. the key just inserted into the
// Window, which triggered this eviction but isn't the candidate).
func (e *Engine[K, V]) admitToMain(c *node.Node[K, V, meta]) {
	if e.probation.Len() < e.capP {
		c.Meta.Region = regionProbation
		e.probation.Append(c)
		return
	}
	v := e.probation.Front()
	if v == nil {
		c.Meta.Region = regionProbation
		e.probation.Append(c)
		return
	}
	vEst := e.sketch.Estimate(xhash.Hash(v.Key))
	cEst := e.sketch.Estimate(xhash.Hash(c.Key))
	if vEst > cEst {
		// candidate loses the contest: it never really enters the cache.
		k, val := c.Key, c.Val
		e.store.Remove(k, 0)
		if e.cfg.OnEvict != nil {
			e.cfg.OnEvict(k, val, policy.EvictCapacity)
		}
		return
	}
	e.releaseNode(v, policy.EvictCapacity, true)
	c.Meta.Region = regionProbation
	e.probation.Append(c)
}

// Get returns k's value. A live hit increments the frequency sketch and
// applies the region-specific promotion rule.
func (e *Engine[K, V]) Get(k K, h uint64) (V, bool) {
	n, ok := e.store.Get(k, h)
	if !ok {
		var zero V
		return zero, false
	}
	if e.expired(n, e.cfg.Clock.NowMillis()) {
		e.releaseNode(n, policy.EvictTTL, true)
		var zero V
		return zero, false
	}
	e.sketch.Increment(h)
	e.onHit(n, h)
	return n.Val, true
}

// Set inserts or updates k. A new key enters the Window; overflowing the
// Window runs the main-cache admission contest for the evicted candidate.
// An existing key is overwritten in place: the sketch counts the access and
// the node moves to the back of its own region, whose tag does not change.
func (e *Engine[K, V]) Set(k K, v V, expireAt int64, h uint64) {
	if n, ok := e.store.Get(k, h); ok {
		n.Val = v
		n.Expire = expireAt
		e.sketch.Increment(h)
		e.listFor(n.Meta.Region).MoveToBack(n)
		return
	}

	e.sketch.Increment(h)
	n := e.store.Acquire(k)
	n.Val = v
	n.Expire = expireAt
	n.Meta.Region = regionWindow
	e.window.Append(n)

	if e.window.Len() > e.capW {
		victim := e.window.PopFront()
		if victim != nil {
			e.admitToMain(victim)
		}
	}
}

// Remove deletes k if present, wherever it currently lives.
func (e *Engine[K, V]) Remove(k K, h uint64) bool {
	n, ok := e.store.Get(k, h)
	if !ok {
		return false
	}
	e.releaseNode(n, policy.EvictCapacity, false)
	return true
}

// Contains reports liveness without touching the sketch or region state.
func (e *Engine[K, V]) Contains(k K, h uint64) bool {
	n, ok := e.store.Get(k, h)
	if !ok {
		return false
	}
	return !e.expired(n, e.cfg.Clock.NowMillis())
}

// Count returns the number of live entries across all three regions.
func (e *Engine[K, V]) Count() int {
	return e.window.Len() + e.probation.Len() + e.protected.Len()
}
