package cache

import (
	"sync"

	"github.com/gopherlru/evictcache/policy"
	"github.com/gopherlru/evictcache/policy/fifo"
	"github.com/gopherlru/evictcache/policy/lru"
	"github.com/gopherlru/evictcache/policy/s3fifo"
	"github.com/gopherlru/evictcache/policy/sieve"
	"github.com/gopherlru/evictcache/policy/tinylfu"
)

// newEngine builds one Engine of kind from cfg. Dispatch happens once per
// shard at construction time, so the hot path never pays for a type switch
// it didn't already need: every Get/Set/Remove still goes through the
// policy.Engine interface, but the decision of which concrete Engine backs
// it is made exactly once.
func newEngine[K comparable, V any](kind policy.Kind, cfg policy.Config[K, V]) policy.Engine[K, V] {
	switch kind {
	case policy.FIFO:
		return fifo.New[K, V](cfg)
	case policy.SIEVE:
		return sieve.New[K, V](cfg)
	case policy.S3FIFO:
		return s3fifo.New[K, V](cfg)
	case policy.TinyLFU:
		return tinylfu.New[K, V](cfg)
	default:
		return lru.New[K, V](cfg)
	}
}

// locker is the RW-lock surface a shard drives. *sync.RWMutex satisfies it
// directly; noopLocker satisfies it with every method body empty.
// Thread-safety becomes a construction-time choice this way: two concrete
// locker types behind one unexported interface rather than two shard
// types, since the only thing that differs between a thread-safe and a
// single-goroutine shard is what backs this interface.
type locker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// noopLocker elides locking entirely for Options.ThreadSafety == false: all
// four methods are empty, so a single-goroutine cache pays no
// synchronization cost beyond the interface call.
type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}

func newLocker(threadSafety bool) locker {
	if threadSafety {
		return &sync.RWMutex{}
	}
	return noopLocker{}
}

// shard is one independently locked partition of the keyspace: the cache
// front end routes by hash to exactly one of these, and every field below
// belongs solely to whichever goroutine holds mu. One RWMutex per shard;
// Get takes the exclusive half because it mutates recency/frequency
// metadata. The embedded policy.Engine is generic so the same shard type
// serves all five policies.
type shard[K comparable, V any] struct {
	mu locker

	engine  policy.Engine[K, V]
	metrics Metrics
}

func newShard[K comparable, V any](kind policy.Kind, cfg policy.Config[K, V], threadSafety bool, metrics Metrics) *shard[K, V] {
	return &shard[K, V]{
		mu:      newLocker(threadSafety),
		engine:  newEngine[K, V](kind, cfg),
		metrics: metrics,
	}
}

// Get takes exclusive mode: even a hit mutates recency/frequency metadata,
// so shared mode is never safe here.
func (s *shard[K, V]) Get(k K, h uint64) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.engine.Get(k, h)
	if ok {
		s.metrics.Hit()
	} else {
		s.metrics.Miss()
	}
	return v, ok
}

// Set inserts or updates k, reporting the post-operation size to Metrics.
func (s *shard[K, V]) Set(k K, v V, expireAt int64, h uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Set(k, v, expireAt, h)
	s.metrics.Size(s.engine.Count())
}

// Add inserts k only if absent, returning false without modifying the entry
// if k is already present. Built from Engine's existing Contains+Set rather
// than adding a new Engine method every policy would need to implement.
func (s *shard[K, V]) Add(k K, v V, expireAt int64, h uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.Contains(k, h) {
		return false
	}
	s.engine.Set(k, v, expireAt, h)
	s.metrics.Size(s.engine.Count())
	return true
}

// Remove deletes k if present, reporting true iff it was.
func (s *shard[K, V]) Remove(k K, h uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.engine.Remove(k, h)
	if ok {
		s.metrics.Size(s.engine.Count())
	}
	return ok
}

// Contains reports liveness in shared mode; it never promotes k.
func (s *shard[K, V]) Contains(k K, h uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Contains(k, h)
}

// Count returns the number of live entries in shared mode.
func (s *shard[K, V]) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine.Count()
}
