package tinylfu

import (
	"testing"

	"github.com/gopherlru/evictcache/internal/xhash"
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

// Concrete scenario from the spec: cache_size=5 (W=1, T=3, P=1). Key 5 is
// admitted into the Window but loses the Probationary admission contest to
// key 1, which the sketch has observed more often (set once and got once,
// versus key 5's single set). Every other key survives.
func TestTinyLFU_AdmissionContestFavorsHotterKey(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	e := newEngine(5, clk, nil)

	h := func(k int) uint64 { return xhash.Hash(k) }

	e.Set(1, "v", 0, h(1))
	e.Set(2, "v", 0, h(2))
	e.Get(1, h(1))
	e.Set(3, "v", 0, h(3))
	e.Get(2, h(2))
	e.Set(4, "v", 0, h(4))
	e.Get(3, h(3))
	e.Set(5, "v", 0, h(5))
	e.Get(4, h(4))
	e.Get(4, h(4))
	e.Get(4, h(4))
	e.Set(6, "v", 0, h(6))

	if _, ok := e.Get(5, h(5)); ok {
		t.Fatalf("expected 5 to lose the admission contest and be absent")
	}
	for _, k := range []int{1, 2, 3, 4, 6} {
		if _, ok := e.Get(k, h(k)); !ok {
			t.Fatalf("expected %d present", k)
		}
	}
}

func TestTinyLFU_TTLExpiryOnGet(t *testing.T) {
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

func TestTinyLFU_UpdateInPlacePreservesRegion(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	e := newEngine(10, clk, nil)

	e.Set(1, "a", 0, 0)
	e.Set(2, "x", 0, 0) // overflows the 1-slot Window, moving 1 into Probation
	e.Set(1, "b", 0, 0)
	if n, ok := e.(*Engine[int, string]).store.Get(1, 0); !ok || n.Meta.Region != regionProbation {
		t.Fatalf("expected 1 to stay in Probation after an in-place update")
	}
	v, ok := e.Get(1, 0)
	if !ok || v != "b" {
		t.Fatalf("expected overwritten value b, got %q, %v", v, ok)
	}
}
