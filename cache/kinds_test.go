package cache

import "github.com/gopherlru/evictcache/policy"

// allPolicyKinds lists every eviction policy this package wires up, so
// cross-policy tests (the race test) exercise all five rather than only the
// default.
func allPolicyKinds() []policy.Kind {
	return []policy.Kind{policy.FIFO, policy.LRU, policy.SIEVE, policy.S3FIFO, policy.TinyLFU}
}
