package s3fifo

import (
	"testing"

	"github.com/gopherlru/evictcache/policy"
)

type fakeClock struct{ t int64 }

func (f *fakeClock) NowMillis() int64 { return f.t }

func newEngine(capacity int, clk *fakeClock, onEvict policy.EvictFunc[int, string]) policy.Engine[int, string] {
	return New[int, string](policy.Config[int, string]{
		Capacity: capacity,
		PoolSize: capacity,
		Clock:    clk,
		OnEvict:  onEvict,
	})
}

// Concrete scenario from the spec: cache_size=5 (S=1, M=2, G=2). set(1..5),
// get(1..4), set(6). Key 1 is fully evicted from Main once its second
// chance is spent; key 5 lands in Ghost and is still retrievable; the rest
// survive in Main or Small.
func TestS3FIFO_GhostRetentionScenario(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	var evicted []int
	e := newEngine(5, clk, func(k int, v string, r policy.EvictReason) { evicted = append(evicted, k) })

	for i := 1; i <= 5; i++ {
		e.Set(i, "v", 0, 0)
	}
	for i := 1; i <= 4; i++ {
		e.Get(i, 0)
	}
	e.Set(6, "v", 0, 0)

	if _, ok := e.Get(1, 0); ok {
		t.Fatalf("expected 1 evicted")
	}
	for _, k := range []int{2, 3, 4, 5, 6} {
		if _, ok := e.Get(k, 0); !ok {
			t.Fatalf("expected %d present", k)
		}
	}
	if len(evicted) != 1 || evicted[0] != 1 {
		t.Fatalf("expected exactly one reported eviction (key 1), got %v", evicted)
	}
	// 5 survives only via Ghost, so it must not count toward live occupancy.
	if e.Count() > 5 {
		t.Fatalf("expected live count to exclude ghost entries, got %d", e.Count())
	}
}

func TestS3FIFO_GhostHitIsReadmittedToMainOnSet(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	e := newEngine(5, clk, nil)

	for i := 1; i <= 5; i++ {
		e.Set(i, "v", 0, 0)
	}
	for i := 1; i <= 4; i++ {
		e.Get(i, 0)
	}
	e.Set(6, "v", 0, 0) // demotes 5 into Ghost

	countBefore := e.Count()
	e.Set(5, "reinstated", 0, 0) // re-admission from Ghost
	if e.Count() != countBefore+1 {
		t.Fatalf("expected live count to grow by one on ghost re-admission, got %d -> %d", countBefore, e.Count())
	}
	v, ok := e.Get(5, 0)
	if !ok || v != "reinstated" {
		t.Fatalf("expected re-admitted value, got %q, %v", v, ok)
	}
}

func TestS3FIFO_TTLExpiryOnGet(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	var reason policy.EvictReason
	e := newEngine(10, clk, func(k int, v string, r policy.EvictReason) { reason = r })

	e.Set(1, "a", 100, 0)
	clk.t = 150
	if _, ok := e.Get(1, 0); ok {
		t.Fatalf("expected expired")
	}
	if reason != policy.EvictTTL {
		t.Fatalf("expected EvictTTL, got %v", reason)
	}
}
