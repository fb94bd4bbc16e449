// Package s3fifo implements the S3-FIFO eviction policy: three intrusive
// lists — Small, Main, and Ghost — with a saturating 2-bit frequency
// counter per node driving promotion from Small to Main and demotion from
// Small to Ghost. Built directly from the algorithm's description, in the
// list/pool/map idiom established by policy/lru and policy/fifo.
//
// Eviction runs against the pre-insertion total occupancy before the new
// node is admitted: "while total length >= max, evict" is evaluated, and
// only once it is satisfied does the new node get created and appended to
// Small. Evicting after admission instead would let Small/Main/Ghost
// transiently exceed max by one and changes which keys end up evicted under
// repeated pressure.
package s3fifo

import (
	"github.com/gopherlru/evictcache/internal/list"
	"github.com/gopherlru/evictcache/internal/node"
	"github.com/gopherlru/evictcache/internal/pool"
	"github.com/gopherlru/evictcache/internal/store"
	"github.com/gopherlru/evictcache/policy"
)

const (
	queueSmall uint8 = iota
	queueMain
	queueGhost
)

type meta struct {
	Freq  uint8
	Queue uint8
}

const maxFreq = 3

// Engine is the S3-FIFO policy.Engine.
type Engine[K comparable, V any] struct {
	cfg   policy.Config[K, V]
	pool  *pool.Pool[K, V, meta]
	store *store.Map[K, V, meta]

	small, main, ghost list.List[K, V, meta]

	capS, capM, capG int
}

// New constructs an S3-FIFO policy.Engine. PoolSize must cover Small+Main+
// Ghost residency, not just Capacity, since Ghost entries occupy Map and
// pool slots too.
func New[K comparable, V any](cfg policy.Config[K, V]) policy.Engine[K, V] {
	capS := max1(cfg.Capacity / 10)
	capM := max1((cfg.Capacity - capS) / 2)
	capG := capM

	poolSize := cfg.PoolSize
	if want := capS + capM + capG; poolSize < want {
		poolSize = want
	}
	p := pool.New[K, V, meta](poolSize)
	return &Engine[K, V]{
		cfg:   cfg,
		pool:  p,
		store: store.New[K, V, meta](poolSize, p),
		capS:  capS,
		capM:  capM,
		capG:  capG,
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

func (e *Engine[K, V]) listFor(tag uint8) *list.List[K, V, meta] {
	switch tag {
	case queueSmall:
		return &e.small
	case queueMain:
		return &e.main
	default:
		return &e.ghost
	}
}

// release fully removes n from its list and the map, optionally reporting
// the eviction. Used both for explicit Remove and for policy-driven
// eviction.
func (e *Engine[K, V]) release(n *node.Node[K, V, meta], reason policy.EvictReason, report bool) {
	e.listFor(n.Meta.Queue).Remove(n)
	k, v := n.Key, n.Val
	e.store.Remove(k, 0)
	if report && e.cfg.OnEvict != nil {
		e.cfg.OnEvict(k, v, reason)
	}
}

func (e *Engine[K, V]) total() int {
	return e.small.Len() + e.main.Len() + e.ghost.Len()
}

func (e *Engine[K, V]) maxTotal() int {
	return e.capS + e.capM + e.capG
}

// evictOnce performs one step of eviction. It may be a pure demotion or
// promotion that does not shrink total occupancy (Small -> Ghost when
// Ghost has room, or Main's second-chance recycling), so callers must loop
// on total() rather than assuming one call frees one slot.
func (e *Engine[K, V]) evictOnce() bool {
	if e.small.Len() >= e.capS {
		if e.small.Len() == 0 {
			return false
		}
		e.evictFromSmall()
		return true
	}
	if e.main.Len() == 0 {
		return false
	}
	e.evictFromMain()
	return true
}

func (e *Engine[K, V]) evictFromSmall() {
	victim := e.small.PopFront()
	if victim == nil {
		return
	}
	if victim.Meta.Freq > 0 {
		victim.Meta.Freq = 0
		victim.Meta.Queue = queueMain
		e.main.Append(victim)
		return
	}
	if e.ghost.Len() >= e.capG {
		if ghostVictim := e.ghost.PopFront(); ghostVictim != nil {
			k, v := ghostVictim.Key, ghostVictim.Val
			e.store.Remove(k, 0)
			if e.cfg.OnEvict != nil {
				e.cfg.OnEvict(k, v, policy.EvictCapacity)
			}
		}
	}
	victim.Meta.Queue = queueGhost
	e.ghost.Append(victim)
}

func (e *Engine[K, V]) evictFromMain() {
	for {
		victim := e.main.PopFront()
		if victim == nil {
			return
		}
		if victim.Meta.Freq > 0 {
			victim.Meta.Freq--
			victim.Meta.Queue = queueMain
			e.main.Append(victim)
			continue
		}
		k, v := victim.Key, victim.Val
		e.store.Remove(k, 0)
		if e.cfg.OnEvict != nil {
			e.cfg.OnEvict(k, v, policy.EvictCapacity)
		}
		return
	}
}

// Get returns k's value. A hit on a live (non-Ghost) entry bumps its
// frequency counter; a hit on a Ghost entry still returns its retained
// value without touching frequency — re-admission only happens through Set.
func (e *Engine[K, V]) Get(k K, h uint64) (V, bool) {
	n, ok := e.store.Get(k, h)
	if !ok {
		var zero V
		return zero, false
	}
	if e.expired(n, e.cfg.Clock.NowMillis()) {
		e.release(n, policy.EvictTTL, true)
		var zero V
		return zero, false
	}
	if n.Meta.Queue != queueGhost && n.Meta.Freq < maxFreq {
		n.Meta.Freq++
	}
	return n.Val, true
}

// Set inserts or updates k. A Ghost hit is re-admitted to Main; a Small/Main
// hit is treated as an access (frequency bump) with its value overwritten;
// a brand new key evicts against the pre-insertion total and enters Small.
func (e *Engine[K, V]) Set(k K, v V, expireAt int64, h uint64) {
	if n, ok := e.store.Get(k, h); ok {
		if n.Meta.Queue == queueGhost {
			e.ghost.Remove(n)
			n.Meta.Queue = queueMain
			n.Val = v
			n.Expire = expireAt
			e.main.Append(n)
			return
		}
		n.Val = v
		n.Expire = expireAt
		if n.Meta.Freq < maxFreq {
			n.Meta.Freq++
		}
		return
	}

	for e.total() >= e.maxTotal() {
		if !e.evictOnce() {
			break
		}
	}

	n := e.store.Acquire(k)
	n.Val = v
	n.Expire = expireAt
	n.Meta.Freq = 0
	n.Meta.Queue = queueSmall
	e.small.Append(n)
}

// Remove deletes k if present, wherever it currently lives (Small, Main, or
// Ghost).
func (e *Engine[K, V]) Remove(k K, h uint64) bool {
	n, ok := e.store.Get(k, h)
	if !ok {
		return false
	}
	e.release(n, policy.EvictCapacity, false)
	return true
}

// Contains reports liveness, including Ghost-resident keys, without
// touching frequency.
func (e *Engine[K, V]) Contains(k K, h uint64) bool {
	n, ok := e.store.Get(k, h)
	if !ok {
		return false
	}
	return !e.expired(n, e.cfg.Clock.NowMillis())
}

// Count returns the number of live, non-Ghost entries.
func (e *Engine[K, V]) Count() int {
	return e.small.Len() + e.main.Len()
}
