package sieve

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

// Scenario 3 from the concrete-scenarios table: cap=3, set(1,2,3), get(1),
// get(2), set(4). The hand starts at the tail (1), finds it visited (from
// get(1)), clears it and steps to 2; 2 is also visited, clears it and steps
// to 3; 3 is unvisited, so 3 is evicted.
func TestSIEVE_VisitedBitProtectsRecentlyAccessedEntries(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	var evicted []int
	e := newEngine(3, clk, func(k int, v string, r policy.EvictReason) { evicted = append(evicted, k) })

	e.Set(1, "a", 0, 0)
	e.Set(2, "b", 0, 0)
	e.Set(3, "c", 0, 0)
	e.Get(1, 0)
	e.Get(2, 0)
	e.Set(4, "d", 0, 0)

	if len(evicted) != 1 || evicted[0] != 3 {
		t.Fatalf("expected only 3 evicted, got %v", evicted)
	}
	for _, k := range []int{1, 2, 4} {
		if _, ok := e.Get(k, 0); !ok {
			t.Fatalf("expected %d present", k)
		}
	}
	if _, ok := e.Get(3, 0); ok {
		t.Fatalf("expected 3 absent")
	}
}

func TestSIEVE_HandContinuesFromWherePreviousSweepLeftOff(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	var evicted []int
	e := newEngine(2, clk, func(k int, v string, r policy.EvictReason) { evicted = append(evicted, k) })

	e.Set(1, "a", 0, 0)
	e.Set(2, "b", 0, 0)
	e.Set(3, "c", 0, 0) // evicts 1 (oldest, unvisited)
	e.Set(4, "d", 0, 0) // evicts 2

	if len(evicted) != 2 || evicted[0] != 1 || evicted[1] != 2 {
		t.Fatalf("expected 1 then 2 evicted in order, got %v", evicted)
	}
}

func TestSIEVE_TTLExpiryOnGet(t *testing.T) {
	t.Parallel()

	clk := &fakeClock{}
	var reason policy.EvictReason
	e := newEngine(4, clk, func(k int, v string, r policy.EvictReason) { reason = r })

	e.Set(1, "a", 100, 0)
	clk.t = 150
	if _, ok := e.Get(1, 0); ok {
		t.Fatalf("expected expired")
	}
	if reason != policy.EvictTTL {
		t.Fatalf("expected EvictTTL, got %v", reason)
	}
}
