// Package cache provides a fast, generic, sharded in-memory cache with a
// choice of five eviction policies (FIFO, LRU, SIEVE, S3-FIFO, W-TinyLFU),
// optional per-entry TTL, singleflight-coalesced loading, and pluggable
// metrics.
//
// Design
//
//   - Concurrency: the cache is split into shards, each an independent
//     policy.Engine. When Options.ThreadSafety is set, each shard carries
//     its own RWMutex; Get takes the exclusive half because even a hit
//     mutates recency or frequency metadata, and Contains/Len take the
//     shared half. The default shard count is chosen by a heuristic
//     (util.ReasonableShardCount) and is always a power of two.
//
//   - Storage: each shard's policy.Engine owns a store.Map for lookup and
//     one or more internal/list Lists for ordering, all backed by a
//     preallocated internal/pool arena. Every public operation is O(1)
//     amortized.
//
//   - Policies: selected via Options.Policy (policy.Kind); LRU is the zero
//     value and therefore the default. Each policy owns its storage
//     outright rather than sharing one list shape across policies — see
//     package policy's doc comment.
//
//   - TTL: entries carry an absolute millisecond deadline. Expiration is
//     lazy, checked only by Get (which evicts an expired entry) and
//     Contains (which reports it absent without evicting it). Set does not
//     check expiry.
//
//   - GetOrLoad: coalesces concurrent loads for the same key using
//     internal/singleflight. If Loader is nil, GetOrLoad returns
//     ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals.
//     NoopMetrics is the default; metrics/prom provides a Prometheus
//     adapter.
//
//   - Callbacks: Options.OnEvict(k, v, reason) runs synchronously under the
//     owning shard's lock for every policy-initiated eviction (reason is
//     one of EvictCapacity, EvictTTL). It is never called for an explicit
//     Remove.
//
// Basic usage
//
//	// Create an LRU cache (the default policy) with capacity for 10k entries.
//	c, err := cache.New[string, []byte](cache.Options[string, []byte]{CacheSize: 10_000})
//	if err != nil {
//	    // Options were invalid or exceeded the allocation ceiling.
//	}
//	c.Set("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Remove("a")
//
// With TTL
//
//	c, _ := cache.New[string, string](cache.Options[string, string]{CacheSize: 1024})
//	c.SetWithTTL("tmp", "v", 200*time.Millisecond)
//	time.Sleep(300 * time.Millisecond)
//	_, ok := c.Get("tmp") // ok == false (expired)
//
// With GetOrLoad (singleflight)
//
//	c, _ := cache.New[string, string](cache.Options[string, string]{
//	    CacheSize: 1024,
//	    Loader: func(ctx context.Context, k string) (string, error) {
//	        return "v:" + k, nil // e.g. fetch from a database
//	    },
//	})
//	v, err := c.GetOrLoad(context.Background(), "key")
//
// Using an alternative policy (W-TinyLFU)
//
//	c, _ := cache.New[string, string](cache.Options[string, string]{
//	    CacheSize: 50_000,
//	    Policy:    policy.TinyLFU,
//	})
//
// Exporting metrics (Prometheus adapter)
//
//	m := prom.New(nil, "evictcache", "demo", nil) // implements cache.Metrics
//	c, _ := cache.New[string, []byte](cache.Options[string, []byte]{
//	    CacheSize: 10_000,
//	    Metrics:   m,
//	})
//
// Thread-safety & complexity
//
// Every method on Cache is safe for concurrent use when Options.ThreadSafety
// is true; with it false, callers must serialize their own access (no locks
// are taken at all, trading safety for a single-goroutine fast path).
// Typical operation cost is O(1) amortized — one map access and a constant
// number of list link fixes. Eviction is also O(1) amortized per removed
// entry.
//
// See cache/options.go for the full set of Options fields and package
// policy for the Engine contract used to implement additional strategies.
package cache
