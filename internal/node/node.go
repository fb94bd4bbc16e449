// Package node defines the intrusive payload carrier shared by the node
// pool, the intrusive list, and the map: a Node lives in exactly one list at
// a time, is looked up by key through the map, and never moves in memory
// once acquired from the pool.
//
// M is the per-policy metadata type (SIEVE's visited bit, S3-FIFO's
// freq+queue tag, W-TinyLFU's region tag, ...). Each policy instantiates its
// own Node[K, V, M] rather than sharing one field layout across policies, so
// the byte SIEVE needs doesn't sit unused in every FIFO entry.
package node

// Node is the unit of storage. Prev/Next are weak references into whichever
// Intrusive List currently holds the node; the pool owns the backing memory.
type Node[K comparable, V any, M any] struct {
	Key K
	Val V

	Prev, Next *Node[K, V, M]

	// Expire is an absolute millisecond deadline; 0 means "never expires".
	Expire int64

	Meta M
}

// Reset clears every field to its zero value. Called by the pool before a
// node is returned to the free list so a reused node never leaks a stale
// key, value, or metadata into its next tenancy.
func (n *Node[K, V, M]) Reset() {
	var zero Node[K, V, M]
	*n = zero
}
