// Package xhash computes the 64-bit key hash threaded through every Map and
// Policy Engine call, so a key is hashed exactly once per operation. Backed
// by github.com/cespare/xxhash/v2 rather than a hand-rolled hash — xxhash is
// already pulled into the module transitively via the Prometheus client, and
// is the better-known, better-tested quantity for a cache's hot path.
package xhash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Hash computes a 64-bit digest for k. Supported: string, []byte, fixed-size
// byte arrays, every integer width, and fmt.Stringer as a last resort.
// Panics on unsupported key types: a silently poor hash is worse than a
// loud failure (callers hit this on the very first cache operation for a
// given K, since every operation hashes its key).
func Hash[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return xxhash.Sum64String(v)
	case []byte:
		return xxhash.Sum64(v)
	case [16]byte:
		return xxhash.Sum64(v[:])
	case [32]byte:
		return xxhash.Sum64(v[:])
	case [64]byte:
		return xxhash.Sum64(v[:])

	case uint8:
		return hashUint64(uint64(v))
	case uint16:
		return hashUint64(uint64(v))
	case uint32:
		return hashUint64(uint64(v))
	case uint64:
		return hashUint64(v)
	case uint:
		return hashUint64(uint64(v))
	case uintptr:
		return hashUint64(uint64(v))
	case int8:
		return hashUint64(uint64(uint8(v)))
	case int16:
		return hashUint64(uint64(uint16(v)))
	case int32:
		return hashUint64(uint64(uint32(v)))
	case int64:
		return hashUint64(uint64(v))
	case int:
		return hashUint64(uint64(v))

	case fmt.Stringer:
		return xxhash.Sum64String(v.String())
	default:
		panic(fmt.Sprintf("xhash.Hash: unsupported key type %T; convert key to string or provide a custom hasher", k))
	}
}

func hashUint64(u uint64) uint64 {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(u)
		u >>= 8
	}
	return xxhash.Sum64(b[:])
}
