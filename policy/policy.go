// Package policy defines the Engine contract each eviction policy satisfies
// and the shared types (Kind, EvictReason, Config) the cache front end uses
// to construct and drive one. Each policy owns its storage outright — one
// Map plus one or more Lists (S3-FIFO's three queues, W-TinyLFU's three
// regions plus a sketch) — rather than a single shared list shape, so the
// shard only forwards operations and the precomputed hash.
package policy

import "github.com/gopherlru/evictcache/internal/clock"

// Kind identifies one of the five eviction policies a Cache can be built
// with. LRU is the zero value, so a zero Options.Policy defaults to LRU.
type Kind int

const (
	LRU Kind = iota
	FIFO
	SIEVE
	S3FIFO
	TinyLFU
)

func (k Kind) String() string {
	switch k {
	case FIFO:
		return "fifo"
	case LRU:
		return "lru"
	case SIEVE:
		return "sieve"
	case S3FIFO:
		return "s3fifo"
	case TinyLFU:
		return "tinylfu"
	default:
		return "unknown"
	}
}

// EvictReason explains why an entry left the cache, reported to EvictFunc
// and (via the cache package) to Metrics.Evict: a policy decided capacity
// pressure required a victim, or lazy TTL expiry found a stale entry on
// access.
type EvictReason int

const (
	EvictCapacity EvictReason = iota
	EvictTTL
)

func (r EvictReason) String() string {
	switch r {
	case EvictCapacity:
		return "capacity"
	case EvictTTL:
		return "ttl"
	default:
		return "unknown"
	}
}

// EvictFunc is called synchronously, under the shard's lock, whenever a
// policy removes an entry on its own initiative (capacity eviction, lazy
// TTL expiry, or S3-FIFO ghost-entry aging). It is never called
// for an explicit Remove by the caller.
type EvictFunc[K comparable, V any] func(key K, value V, reason EvictReason)

// Config bundles everything a policy constructor needs. Capacity bounds the
// total number of live entries the policy may hold; PoolSize bounds
// preallocated Node storage and may exceed Capacity for
// policies that keep ghost entries (S3-FIFO) without those
// ghosts counting toward Count().
type Config[K comparable, V any] struct {
	Capacity int
	PoolSize int
	Clock    clock.Clock
	OnEvict  EvictFunc[K, V]
}

// Engine is one eviction policy's complete storage and decision logic: Map,
// List(s), and the admission/promotion/eviction rules that tie them
// together. A shard holds exactly one Engine per key space it owns.
//
// All methods run under the shard's lock; an Engine implementation is never
// itself concurrency-safe.
type Engine[K comparable, V any] interface {
	// Get returns the live value for k, promoting it per the policy's rules.
	// A lazily-expired entry is evicted (EvictTTL) and reported as a miss.
	Get(k K, h uint64) (V, bool)

	// Set inserts or updates k. expireAt is an absolute millisecond
	// deadline, or 0 for no expiry. May evict one or more existing entries
	// via the Engine's configured EvictFunc.
	Set(k K, v V, expireAt int64, h uint64)

	// Remove deletes k if present, reporting true iff it was. Never invokes
	// EvictFunc — this is caller-initiated removal, not policy eviction.
	Remove(k K, h uint64) bool

	// Contains reports whether k is live, without promoting it or treating
	// the query itself as an access for frequency-tracking policies.
	Contains(k K, h uint64) bool

	// Count returns the number of live entries (ghost entries used
	// internally by S3-FIFO do not count).
	Count() int
}

// Factory constructs a fresh Engine from a Config. Each policy package
// exposes one as its New function.
type Factory[K comparable, V any] func(cfg Config[K, V]) Engine[K, V]
