package cache

import (
	"context"
	"time"

	"github.com/gopherlru/evictcache/policy"
)

// EvictReason explains why an entry was removed. Re-exported from package
// policy so callers configuring Options never need to import it directly.
type EvictReason = policy.EvictReason

const (
	EvictCapacity = policy.EvictCapacity
	EvictTTL      = policy.EvictTTL
)

// Metrics exposes cache-level observability hooks. There is no cost
// accumulator here (capacity is purely entry-count based), so Size reports
// just an entry count: after a Set, Add or successful Remove it receives the
// resident entry count of the shard that handled the call, not a total
// across shards.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Clock is the public alias for the millisecond clock Options accepts;
// internal/clock.Clock satisfies it directly.
type Clock interface{ NowMillis() int64 }

// Options configures the cache. Zero values are safe: CacheSize is the one
// field a caller must set, everything else defaults sensibly.
//
//   - Policy zero value => LRU
//   - ShardCount == 0   => auto (util.ReasonableShardCount, power of two)
//   - PoolSize == 0     => defaults to CacheSize
//   - Metrics == nil    => NoopMetrics
//   - Clock == nil      => internal/clock.Monotonic
type Options[K comparable, V any] struct {
	// CacheSize is the total logical capacity, partitioned across shards.
	// Must be > 0.
	CacheSize int

	// PoolSize bounds preallocated Node storage per the whole cache (split
	// proportionally across shards), must be <= CacheSize if set explicitly.
	// 0 defaults to CacheSize.
	PoolSize int

	// ShardCount is the number of independent policy instances. 0 picks an
	// automatic value based on GOMAXPROCS.
	ShardCount int

	// ThreadSafety enables per-shard RW locks. false elides locking entirely,
	// for single-goroutine use.
	ThreadSafety bool

	// Policy selects one of the five eviction policies. The zero value is LRU.
	Policy policy.Kind

	// DefaultTTL applies to Set when no per-key TTL is given (0 = no TTL).
	DefaultTTL time.Duration

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called synchronously under the shard lock whenever a
	// policy evicts an entry on its own initiative.
	OnEvict func(k K, v V, reason EvictReason)

	// Metrics receives Hit/Miss/Evict/Size signals. Nil => NoopMetrics.
	Metrics Metrics

	// Clock overrides the time source; nil => internal/clock.Monotonic.
	Clock Clock
}
