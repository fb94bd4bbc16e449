// Package cache implements the sharded front end: given Options, it
// partitions CacheSize and PoolSize across ShardCount independently-locked
// policy instances and routes every operation to exactly one shard by a
// hash computed once per call.
package cache

import (
	"context"
	"time"

	"github.com/gopherlru/evictcache/internal/clock"
	"github.com/gopherlru/evictcache/internal/singleflight"
	"github.com/gopherlru/evictcache/internal/util"
	"github.com/gopherlru/evictcache/internal/xhash"
	"github.com/gopherlru/evictcache/policy"
)

// cache is a sharded in-memory KV store with a pluggable eviction policy.
// All methods are safe for concurrent use when Options.ThreadSafety is set;
// otherwise callers must not invoke it from more than one goroutine.
type cache[K comparable, V any] struct {
	shards []*shard[K, V]
	opt    Options[K, V]

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// clockOrDefault lets a nil Options.Clock default to clock.Monotonic while a
// caller-supplied cache.Clock (e.g. a fake in tests) still satisfies the
// internal clock.Clock every policy.Engine consults — both interfaces
// declare the identical NowMillis() int64 method, so any concrete type
// implementing one already implements the other.
func clockOrDefault[K comparable, V any](opt Options[K, V]) clock.Clock {
	if opt.Clock != nil {
		return opt.Clock
	}
	return clock.Monotonic{}
}

// New constructs a cache per Options. It returns an InvalidConfiguration
// ConfigError when CacheSize <= 0, ShardCount < 0, or PoolSize > CacheSize,
// and an AllocationFailed ConfigError when the requested sizes exceed a
// sanity ceiling no real deployment should approach.
//
// Defaults:
//   - nil Metrics -> NoopMetrics
//   - zero Policy -> LRU (policy.LRU is the zero value of policy.Kind)
//   - ShardCount == 0 -> auto; any shard count is rounded up to the next
//     power of two
//   - PoolSize == 0 -> defaults to CacheSize
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	if opt.CacheSize <= 0 {
		return nil, &ConfigError{Kind: InvalidConfiguration, Msg: "CacheSize must be > 0"}
	}
	if opt.ShardCount < 0 {
		return nil, &ConfigError{Kind: InvalidConfiguration, Msg: "ShardCount must be >= 0"}
	}
	if opt.PoolSize > 0 && opt.PoolSize > opt.CacheSize {
		return nil, &ConfigError{Kind: InvalidConfiguration, Msg: "PoolSize must be <= CacheSize"}
	}
	if opt.CacheSize > maxReasonableSize || opt.PoolSize > maxReasonableSize {
		return nil, &ConfigError{Kind: AllocationFailed, Msg: "requested size exceeds the allocation ceiling"}
	}

	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}

	sh := opt.ShardCount
	if sh <= 0 {
		sh = util.ReasonableShardCount()
	} else {
		sh = int(util.NextPow2(uint64(sh)))
	}

	poolSize := opt.PoolSize
	if poolSize <= 0 {
		poolSize = opt.CacheSize
	}

	clk := clockOrDefault(opt)
	perShardCap := ceilDiv(opt.CacheSize, sh)
	perShardPool := ceilDiv(poolSize, sh)

	c := &cache[K, V]{
		shards: make([]*shard[K, V], sh),
		opt:    opt,
	}
	for i := 0; i < sh; i++ {
		cfg := policy.Config[K, V]{
			Capacity: perShardCap,
			PoolSize: perShardPool,
			Clock:    clk,
			OnEvict:  c.onEvict,
		}
		c.shards[i] = newShard[K, V](opt.Policy, cfg, opt.ThreadSafety, opt.Metrics)
	}
	return c, nil
}

func ceilDiv(n, d int) int {
	if d <= 0 {
		return n
	}
	return (n + d - 1) / d
}

// onEvict fans a policy-driven eviction out to Metrics and Options.OnEvict.
// It runs synchronously under the owning shard's exclusive lock.
func (c *cache[K, V]) onEvict(k K, v V, reason policy.EvictReason) {
	c.opt.Metrics.Evict(reason)
	if c.opt.OnEvict != nil {
		c.opt.OnEvict(k, v, reason)
	}
}

// ---- Cache[K,V] implementation ----

// getShard picks a shard by hashing the key once and returns both the
// shard and that hash, so callers needing the hash for the shard call
// itself (every public operation) never hash twice.
func (c *cache[K, V]) getShard(k K) (*shard[K, V], uint64) {
	h := xhash.Hash(k)
	idx := util.ShardIndex(h, len(c.shards))
	return c.shards[idx], h
}

// Add inserts k->v only if absent, using DefaultTTL if set.
func (c *cache[K, V]) Add(k K, v V) bool {
	s, h := c.getShard(k)
	return s.Add(k, v, c.defaultDeadline(), h)
}

// Set inserts or updates k->v, using DefaultTTL if set, and promotes the
// entry according to the active policy.
func (c *cache[K, V]) Set(k K, v V) {
	s, h := c.getShard(k)
	s.Set(k, v, c.defaultDeadline(), h)
}

// SetWithTTL inserts or updates k->v with a per-key TTL (relative
// duration). A non-positive ttl disables expiration for this entry.
func (c *cache[K, V]) SetWithTTL(k K, v V, ttl time.Duration) {
	s, h := c.getShard(k)
	s.Set(k, v, c.deadline(ttl), h)
}

// Get returns the value for k and a presence flag. On hit, the entry is
// promoted according to the active policy; lazy TTL expiry is applied.
func (c *cache[K, V]) Get(k K) (V, bool) {
	s, h := c.getShard(k)
	return s.Get(k, h)
}

// Remove deletes k if present and returns true on success.
func (c *cache[K, V]) Remove(k K) bool {
	s, h := c.getShard(k)
	return s.Remove(k, h)
}

// Contains reports whether k is present and unexpired, without promoting
// it under the active eviction policy.
func (c *cache[K, V]) Contains(k K) bool {
	s, h := c.getShard(k)
	return s.Contains(k, h)
}

// Len returns the total number of resident entries across all shards. This
// is not a linearizable snapshot across shards: it is the sum of each
// shard's Count() taken under that shard's own shared lock.
func (c *cache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Count()
	}
	return total
}

// Close is a soft close: there are no background goroutines to stop, and
// any in-flight operations remain valid.
func (c *cache[K, V]) Close() error { return nil }

// GetOrLoad returns the value for k; on miss it loads via Options.Loader,
// coalescing concurrent loads for the same key (singleflight). If no
// Loader is configured, returns ErrNoLoader.
func (c *cache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return c.sf.Do(ctx, k, func() (V, error) {
		// double-check after flight join
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err == nil {
			c.Set(k, v)
		}
		return v, err
	})
}

// ---- helpers ----

// defaultDeadline returns an absolute millisecond deadline based on
// DefaultTTL, or 0 (no expiry) when DefaultTTL is unset.
func (c *cache[K, V]) defaultDeadline() int64 {
	if c.opt.DefaultTTL <= 0 {
		return 0
	}
	return c.deadline(c.opt.DefaultTTL)
}

// deadline converts a relative TTL into an absolute millisecond deadline.
// A non-positive ttl returns 0 (no expiration).
func (c *cache[K, V]) deadline(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	clk := clockOrDefault(c.opt)
	return clk.NowMillis() + ttl.Milliseconds()
}
